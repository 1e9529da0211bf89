package service

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/opengram/realtime-delivery-service/internal/domain/model"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"
)

// Enricher augments events with participant display data before delivery.
type Enricher interface {
	// ResolvePair fetches sender and receiver summaries concurrently.
	ResolvePair(ctx context.Context, senderID, receiverID string) (model.UserRef, model.UserRef, error)
	// ResolveUser fetches a single user summary.
	ResolveUser(ctx context.Context, id string) (model.UserRef, error)
	// ResolvePost fetches the post summary for like/comment notifications.
	ResolvePost(ctx context.Context, id string) (*model.PostRef, error)
}

type UserEnricher struct {
	users   UserDirectory
	posts   PostDirectory
	cache   *lru.Cache[string, model.UserRef]
	breaker *gobreaker.CircuitBreaker
}

// NewUserEnricherService provides a thread-safe enricher with an internal
// LRU for hot identities and a circuit breaker in front of the directory;
// when the directory is down, delivery keeps moving with bare references.
func NewUserEnricherService(users UserDirectory, posts PostDirectory) *UserEnricher {
	cache, _ := lru.New[string, model.UserRef](10000)

	return &UserEnricher{
		users: users,
		posts: posts,
		cache: cache,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "user-directory",
			Timeout: 15 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (e *UserEnricher) ResolvePair(ctx context.Context, senderID, receiverID string) (model.UserRef, model.UserRef, error) {
	g, gCtx := errgroup.WithContext(ctx)

	sender := model.BareUserRef(senderID)
	receiver := model.BareUserRef(receiverID)

	g.Go(func() error {
		var err error
		sender, err = e.ResolveUser(gCtx, senderID)
		return err
	})
	g.Go(func() error {
		var err error
		receiver, err = e.ResolveUser(gCtx, receiverID)
		return err
	})

	if err := g.Wait(); err != nil {
		return model.BareUserRef(senderID), model.BareUserRef(receiverID),
			fmt.Errorf("pair enrichment failed: %w", err)
	}
	return sender, receiver, nil
}

func (e *UserEnricher) ResolveUser(ctx context.Context, id string) (model.UserRef, error) {
	if id == "" {
		return model.UserRef{}, nil
	}

	if cached, ok := e.cache.Get(id); ok {
		return cached, nil
	}

	res, err := e.breaker.Execute(func() (any, error) {
		return e.users.GetUser(ctx, id)
	})
	if err != nil {
		// Graceful fallback: a bare reference keeps the message moving.
		return model.BareUserRef(id), err
	}

	ref := res.(model.UserRef)
	e.cache.Add(id, ref)
	return ref, nil
}

func (e *UserEnricher) ResolvePost(ctx context.Context, id string) (*model.PostRef, error) {
	if id == "" {
		return nil, nil
	}
	return e.posts.GetPost(ctx, id)
}
