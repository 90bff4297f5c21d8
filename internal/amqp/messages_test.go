package amqp

import "testing"

func TestDocumentEventRoundTrip(t *testing.T) {
	msg := NewDocumentEventMessage(ActionCreated, 42)

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := DocumentEventFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Action != ActionCreated || got.ID != 42 {
		t.Fatalf("round trip = %+v", got)
	}
	if got.Timestamp.IsZero() {
		t.Fatalf("timestamp not carried")
	}
}

func TestDocumentEventFromInvalidJSON(t *testing.T) {
	if _, err := DocumentEventFromJSON([]byte("{")); err == nil {
		t.Fatal("expected error")
	}
}
