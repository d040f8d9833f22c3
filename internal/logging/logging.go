package logging

import (
	"encoding/json"
	"log"
	"time"
)

type Fields struct {
	Service    string `json:"service"`
	OrderID    string `json:"order_id,omitempty"`
	OrderCode  string `json:"order_code,omitempty"`
	EventID    string `json:"event_id,omitempty"`
	Step       string `json:"step,omitempty"`
	Status     string `json:"status,omitempty"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Message    string `json:"message,omitempty"`
}

type line struct {
	Fields
	Timestamp string `json:"timestamp"`
}

func Log(fields Fields) {
	data, err := json.Marshal(line{Fields: fields, Timestamp: time.Now().UTC().Format(time.RFC3339Nano)})
	if err != nil {
		log.Printf("{\"service\":%q,\"status\":\"log_error\",\"error\":%q}", fields.Service, err.Error())
		return
	}
	log.Print(string(data))
}
