package realtime

import (
	"encoding/json"
	"testing"
)

// TestClassify covers the protocol's error code classes.
func TestClassify(t *testing.T) {
	tests := []struct {
		code int
		want closeClass
	}{
		{4000, classFatal},
		{4001, classFatal},
		{4099, classFatal},
		{4100, classBackoff},
		{4199, classBackoff},
		{4200, classTransient},
		{4201, classTransient},
		{1006, classTransient},
		{1000, classTransient},
	}
	for _, tt := range tests {
		if got := classify(tt.code); got != tt.want {
			t.Errorf("classify(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

// TestError_Temporary verifies only the 4000-4099 band is terminal.
func TestError_Temporary(t *testing.T) {
	fatal := &Error{Code: 4001, Message: "Application does not exist"}
	if fatal.Temporary() {
		t.Error("Temporary() = true for 4001")
	}
	overCapacity := &Error{Code: 4100, Message: "Over capacity"}
	if !overCapacity.Temporary() {
		t.Error("Temporary() = false for 4100")
	}
}

// TestNormalizeData verifies the double-encoded payload form is unwrapped
// and the plain form passes through.
func TestNormalizeData(t *testing.T) {
	doubled, _ := json.Marshal(`{"id":1}`)
	if got := normalizeData(doubled); string(got) != `{"id":1}` {
		t.Errorf("normalizeData(double-encoded) = %s, want the inner JSON", got)
	}

	plain := json.RawMessage(`{"id":1}`)
	if got := normalizeData(plain); string(got) != `{"id":1}` {
		t.Errorf("normalizeData(plain) = %s, want unchanged", got)
	}

	if got := normalizeData(nil); got != nil {
		t.Errorf("normalizeData(nil) = %s, want nil", got)
	}
}

// TestDecodeEventData verifies both payload encodings decode into the
// target struct.
func TestDecodeEventData(t *testing.T) {
	var est connectionEstablished

	doubled, _ := json.Marshal(`{"socket_id":"1.1","activity_timeout":30}`)
	if err := decodeEventData(doubled, &est); err != nil {
		t.Fatalf("decodeEventData(double-encoded) error = %v", err)
	}
	if est.SocketID != "1.1" || est.ActivityTimeout != 30 {
		t.Errorf("decoded = %+v, want socket 1.1 timeout 30", est)
	}

	if err := decodeEventData(json.RawMessage(`{"socket_id":"2.2"}`), &est); err != nil {
		t.Fatalf("decodeEventData(plain) error = %v", err)
	}
	if est.SocketID != "2.2" {
		t.Errorf("SocketID = %q, want 2.2", est.SocketID)
	}

	if err := decodeEventData(nil, &est); err == nil {
		t.Error("decodeEventData(nil) succeeded, want error")
	}
}
