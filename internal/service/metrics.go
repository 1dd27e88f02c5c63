package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	outcomeSuccess = "success"
	outcomePartial = "partial"
	outcomeFailed  = "failed"
)

var (
	// SubmissionsTotal counts review submissions by outcome.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviews_submissions_total",
		Help: "Total number of review submissions by outcome.",
	}, []string{"outcome"})

	// SubmissionDuration tracks the time spent writing a submission.
	SubmissionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "reviews_submission_duration_seconds",
		Help:    "Duration of the review submission workflow.",
		Buckets: prometheus.DefBuckets,
	})

	// ReviewFeedbackTotal counts helpful votes and reports that matched a review.
	ReviewFeedbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviews_feedback_total",
		Help: "Total number of helpful votes and reports applied to reviews.",
	}, []string{"kind"})
)
