package ipc

import (
	"encoding/json"
	"net"
	"strings"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	sent, err := NewEnvelope(TypeHello, HelloMessage{Client: "orchestrator", Version: ProtocolVersion})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- WriteEnvelope(client, sent)
	}()

	got, err := ReadEnvelope(server)
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("WriteEnvelope: %v", err)
	}

	if got.Type != TypeHello {
		t.Errorf("type = %q, want %q", got.Type, TypeHello)
	}
	var hello HelloMessage
	if err := json.Unmarshal(got.Data, &hello); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if hello.Client != "orchestrator" {
		t.Errorf("client = %q, want orchestrator", hello.Client)
	}
	if hello.Version != ProtocolVersion {
		t.Errorf("version = %d, want %d", hello.Version, ProtocolVersion)
	}
}

func TestWriteEnvelopeRejectsOversizedFrame(t *testing.T) {
	big := json.RawMessage(`"` + strings.Repeat("x", maxFrameBytes) + `"`)
	if err := WriteEnvelope(nil, Envelope{Type: TypeRound, Data: big}); err == nil {
		t.Error("WriteEnvelope accepted a frame over the limit")
	}
}

func TestReadEnvelopeRejectsOversizedFrame(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	go func() {
		// Length prefix far over the frame guard, little-endian.
		client.Write([]byte{0xff, 0xff, 0xff, 0xff})
	}()

	if _, err := ReadEnvelope(server); err == nil {
		t.Error("ReadEnvelope accepted an oversized frame")
	}
}
