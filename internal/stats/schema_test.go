package stats

import (
	"encoding/json"
	"testing"

	"ticketlens/internal/profile"
	"ticketlens/internal/ticket"
)

func TestSchema_ValidatesComputedDashboard(t *testing.T) {
	s, err := Schema()
	if err != nil {
		t.Fatalf("Schema() error = %v", err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	tickets := []ticket.Ticket{
		{Key: "INC1", Status: "New", Summary: "printer offline", Created: daysAgo(3), MadeSLA: ptr(true),
			Raw: []ticket.Field{{Header: "number", Value: "INC1"}}},
		{Key: "INC2", Status: "Closed", Created: daysAgo(9), Resolved: daysAgo(1)},
	}
	d := Compute(tickets, 14, now, profile.ServiceNow())

	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var instance map[string]any
	if err := json.Unmarshal(raw, &instance); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if err := resolved.Validate(instance); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
