package handler

import (
	"gastro_vision/camera"
	"gastro_vision/detection"
	"gastro_vision/gate"
	"gastro_vision/notify"
	"gastro_vision/order"
	"gastro_vision/pipeline"
	"gastro_vision/sla"
	"gastro_vision/store"
)

// Handler gom các thành phần mà route cần; main dựng một lần lúc khởi động.
type Handler struct {
	Store    store.Store
	Orders   *order.Service
	SLA      *sla.Service
	Gate     *gate.Gate
	Detector detection.Detector
	Latest   *pipeline.Latest
	Hub      *notify.Hub

	// OpenSource mở một luồng camera mới cho mỗi client /video_feed.
	OpenSource func() (camera.Source, error)
	Pipeline   pipeline.Options
}
