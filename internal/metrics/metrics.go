package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "blog_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	notificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_notifications_created_total",
		Help: "Notifications written, by type.",
	}, []string{"type"})

	likesToggled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blog_likes_toggled_total",
		Help: "Like state changes that touched the store.",
	}, []string{"action"})

	commentsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_comments_deleted_total",
		Help: "Comments removed, cascaded replies included.",
	})
)

// Middleware records the latency of every request under its route template.
func Middleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	requestDuration.
		WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
		Observe(time.Since(start).Seconds())
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func NotificationCreated(notificationType string) {
	notificationsCreated.WithLabelValues(notificationType).Inc()
}

func LikeToggled(liked bool) {
	action := "unlike"
	if liked {
		action = "like"
	}
	likesToggled.WithLabelValues(action).Inc()
}

func CommentsDeleted(n int) {
	commentsDeleted.Add(float64(n))
}
