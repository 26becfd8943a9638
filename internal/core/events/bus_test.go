package events_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/finance-tracker/internal/core/events"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("delivers to type and wildcard subscribers", func() {
		var (
			mu   sync.Mutex
			seen []string
		)
		record := func(tag string) events.Handler {
			return func(_ context.Context, e events.Event) error {
				mu.Lock()
				defer mu.Unlock()
				seen = append(seen, tag+":"+e.EventType())
				return nil
			}
		}
		bus.Subscribe(events.EventTypeGoalCompleted, record("goal"))
		bus.Subscribe(events.AllEvents, record("all"))

		Expect(bus.Publish(context.Background(), events.NewGoalCompleted(1, 2, 500))).To(Succeed())
		bus.Wait()

		Expect(seen).To(ConsistOf("goal:goal.completed", "all:goal.completed"))
	})

	It("keeps running handlers after the request context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		release := make(chan struct{})

		bus.Subscribe(events.EventTypeExpenseRecorded, func(ctx context.Context, _ events.Event) error {
			<-release
			done <- ctx.Err()
			return nil
		})

		Expect(bus.Publish(ctx, events.NewExpenseRecorded(1, 1, 100, "food"))).To(Succeed())
		cancel()
		close(release)
		bus.Wait()

		Expect(<-done).To(BeNil())
	})

	It("surfaces handler errors on synchronous publish", func() {
		bus.Subscribe("custom", func(context.Context, events.Event) error {
			return errors.New("boom")
		})

		err := bus.PublishSync(context.Background(), events.NewCustom("custom", nil))
		Expect(err).To(MatchError(ContainSubstring("boom")))
	})

	It("ignores events nobody listens to", func() {
		Expect(bus.Publish(context.Background(), events.NewAccountRegistered(1, "a@x.com"))).To(Succeed())
		Expect(events.Discard.Publish(context.Background(), events.NewAccountRegistered(1, "a@x.com"))).To(Succeed())
	})
})
