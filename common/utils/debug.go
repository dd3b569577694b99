package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Context carries free-form structured fields attached to a log line.
type Context map[string]interface{}

// Message is the structured JSON shape emitted by Debug.
type Message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

// Debug prints a single structured JSON log line tagged with the emitting
// service/component name.
func Debug(service string, message string) {
	context := make(Context)

	if hostname, err := os.Hostname(); err == nil {
		context["hostname"] = hostname
	}

	msg := Message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: message,
		Context: context,
	}

	data, _ := json.Marshal(msg)
	fmt.Println(string(data))
}
