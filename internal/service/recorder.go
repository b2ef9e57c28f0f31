package service

import "time"

// Recorder receives pipeline observations. *metrics.Metrics implements it.
type Recorder interface {
	ObserveDocument(docType, status string)
	ObserveStage(stage string, d time.Duration)
	ObserveQueueOp(op string, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveDocument(string, string)     {}
func (nopRecorder) ObserveStage(string, time.Duration) {}
func (nopRecorder) ObserveQueueOp(string, error)       {}
