package events

import "github.com/maxaizer/simd-age/internal/entities"

var ReportReadyTopic = "ReportReadyEvent"

type ReportReady struct {
	Report entities.Report
}
