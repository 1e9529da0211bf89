package amqp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/opengram/realtime-delivery-service/internal/domain/model"
)

type recordingNotifier struct {
	calls []string
	err   error
}

func (n *recordingNotifier) Notify(ctx context.Context, recipientID, senderID string, typ model.NotificationType, postID string) error {
	n.calls = append(n.calls, string(typ)+":"+recipientID+"<-"+senderID)
	return n.err
}

func newTestHandler(n *recordingNotifier) *SocialEventHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSocialEventHandler(n, logger, nil)
}

func TestBind_DecodesAndDispatches(t *testing.T) {
	notifier := &recordingNotifier{}
	h := newTestHandler(notifier)

	fn := Bind(h, h.OnPostLikedV1)
	msg := message.NewMessage("m1", []byte(`{"recipient_id":"r1","sender_id":"s1","post_id":"p1"}`))

	if err := fn(msg); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if len(notifier.calls) != 1 || notifier.calls[0] != "like:r1<-s1" {
		t.Errorf("calls = %v, want one like for r1 from s1", notifier.calls)
	}
}

func TestBind_MalformedPayloadIsAcked(t *testing.T) {
	notifier := &recordingNotifier{}
	h := newTestHandler(notifier)

	fn := Bind(h, h.OnPostCommentedV1)
	msg := message.NewMessage("m2", []byte(`{not json`))

	if err := fn(msg); err != nil {
		t.Fatalf("malformed payload must ack, got error: %v", err)
	}
	if len(notifier.calls) != 0 {
		t.Errorf("notifier called for malformed payload: %v", notifier.calls)
	}
}

func TestBind_BusinessFailureIsNacked(t *testing.T) {
	wantErr := errors.New("store down")
	notifier := &recordingNotifier{err: wantErr}
	h := newTestHandler(notifier)

	fn := Bind(h, h.OnUserFollowedV1)
	msg := message.NewMessage("m3", []byte(`{"recipient_id":"r1","sender_id":"s1"}`))

	if err := fn(msg); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want the notifier failure so the message retries", err)
	}
}
