package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/smtp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/filipexyz/folio/internal/domain"
	"github.com/filipexyz/folio/internal/events"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (f *fakeSender) Send(ctx context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

var testContact = domain.ContactMessage{
	ID:        "msg-1",
	Name:      "Ada",
	Email:     "ada@example.com",
	Message:   "Loved the 3D work.",
	CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
}

func TestMessage_Bytes(t *testing.T) {
	msg := ContactNotification("site@example.com", "owner@example.com", testContact)
	raw := string(msg.Bytes())

	for _, want := range []string{
		"To: owner@example.com\r\n",
		"From: site@example.com\r\n",
		"Reply-To: ada@example.com\r\n",
		"Subject: Portfolio Contact: Ada\r\n",
		"Loved the 3D work.",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestMessage_HeaderInjection(t *testing.T) {
	msg := Message{To: "owner@example.com", Subject: "hi\r\nBcc: victim@example.com"}
	raw := string(msg.Bytes())
	if strings.Contains(raw, "\r\nBcc:") {
		t.Errorf("header injection not stripped:\n%s", raw)
	}
}

func TestSMTPSender_Send(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Username: "user", Password: "pass"})
	s.sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		if a == nil {
			t.Error("expected auth to be set")
		}
		return nil
	}

	if err := s.Send(context.Background(), Message{From: "site@example.com", To: "owner@example.com"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if gotAddr != "smtp.example.com:587" {
		t.Errorf("addr = %q", gotAddr)
	}
	if gotFrom != "site@example.com" || len(gotTo) != 1 || gotTo[0] != "owner@example.com" {
		t.Errorf("from=%q to=%v", gotFrom, gotTo)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Send(ctx, Message{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Send with cancelled ctx = %v", err)
	}
}

func TestWorker_Handle(t *testing.T) {
	valid, _ := domain.NewJSONEvent(domain.TopicContactSubmitted, testContact)
	validData, _ := json.Marshal(valid)
	noEmail, _ := domain.NewJSONEvent(domain.TopicContactSubmitted, domain.ContactMessage{Name: "x"})
	noEmailData, _ := json.Marshal(noEmail)

	tests := []struct {
		name          string
		data          []byte
		sendErr       error
		wantMalformed bool
		wantErr       bool
		wantSent      int
	}{
		{"valid", validData, nil, false, false, 1},
		{"not json", []byte("{"), nil, true, true, 0},
		{"no email", noEmailData, nil, true, true, 0},
		{"send failure", validData, errors.New("smtp down"), false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{err: tt.sendErr}
			w := NewWorker(nil, sender, "site@example.com", "owner@example.com")

			err := w.handle(context.Background(), tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, errMalformed) != tt.wantMalformed {
				t.Errorf("malformed = %v, want %v", errors.Is(err, errMalformed), tt.wantMalformed)
			}
			if sender.count() != tt.wantSent {
				t.Errorf("sent = %d, want %d", sender.count(), tt.wantSent)
			}
		})
	}
}

func TestWorker_ConsumesContactEvents(t *testing.T) {
	srv, err := events.StartEmbedded(events.EmbeddedConfig{StoreDir: t.TempDir(), Port: -1})
	if err != nil {
		t.Fatalf("start embedded: %v", err)
	}
	defer srv.Shutdown()

	nc, err := events.Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer nc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := nc.EnsureStream(ctx); err != nil {
		t.Fatalf("ensure stream: %v", err)
	}

	sender := &fakeSender{}
	w := NewWorker(nc.Stream(), sender, "site@example.com", "owner@example.com")
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	event, _ := domain.NewJSONEvent(domain.TopicContactSubmitted, testContact)
	if err := events.NewPublisher(nc.JetStream()).Publish(ctx, event); err != nil {
		t.Fatalf("publish: %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for sender.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if sender.count() != 1 {
		t.Fatalf("sent = %d, want 1", sender.count())
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Start returned %v", err)
	}
}
