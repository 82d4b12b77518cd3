package endpoints

import (
	"encoding/json"
	"net/http"

	"mock-metrics/internal/domain"
	"mock-metrics/internal/util"
)

type Metrics struct {
	logger *util.MetricsLogger
	source domain.MetricsSource
}

func (m *Metrics) Init(source domain.MetricsSource, webSlogger *util.MetricsLogger) {
	m.source = source
	m.logger = webSlogger
}

func (m *Metrics) GetMetricsHandler(w http.ResponseWriter, r *http.Request) {
	record := m.source.Generate()

	if payload, err := json.Marshal(record); err == nil {
		m.logger.LogEvent(util.LOG_LEVEL_INFO, "/metrics ->", string(payload))
	}

	if err := WriteJSON(w, record); err != nil {
		m.logger.LogEvent(util.LOG_LEVEL_ERROR, "While writing /metrics response. Err -", err)
	}
}
