package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CheckIns counts kiosk check-ins by outcome ("ok", "not_found", "error").
	CheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hagwon_kiosk_checkins_total",
		Help: "Kiosk check-in attempts by outcome.",
	}, []string{"outcome"})

	// RecordUpserts counts attendance and tuition writes.
	RecordUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hagwon_record_upserts_total",
		Help: "Attendance and tuition record upserts by entity.",
	}, []string{"entity"})

	// NotificationsSent counts parent notifications handed to the notifier.
	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hagwon_notifications_sent_total",
		Help: "Parent notifications delivered by the worker.",
	})
)
