// internal/domain/order/service_test.go
package order

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/baankanom/bakery-backend/internal/domain/cart"
	"github.com/baankanom/bakery-backend/internal/domain/checkout"
	"github.com/baankanom/bakery-backend/internal/domain/pricing"
)

type stubSlipStore struct {
	puts    []string
	deleted []string
	putErr  error
}

func (s *stubSlipStore) Put(ctx context.Context, bucket, path string, content io.Reader) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	s.puts = append(s.puts, path)
	return path, nil
}

func (s *stubSlipStore) PublicURL(bucket, path string) string {
	return "/files/" + bucket + "/" + path
}

func (s *stubSlipStore) Delete(ctx context.Context, bucket, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

type stubCarts struct {
	cleared bool
}

func (s *stubCarts) ClearTx(ctx context.Context, tx *gorm.DB, userID uint) error {
	s.cleared = true
	return nil
}

type stubCheckouts struct {
	summary *checkout.Summary
	cleared bool
}

func (s *stubCheckouts) Summary(ctx context.Context, userID uint) (*checkout.Summary, error) {
	return s.summary, nil
}

func (s *stubCheckouts) Clear(ctx context.Context, userID uint) error {
	s.cleared = true
	return nil
}

type stubPublisher struct {
	events []string
}

func (s *stubPublisher) Publish(ctx context.Context, table, eventType string, userID uint) {
	s.events = append(s.events, table+":"+eventType)
}

type stubWriter struct {
	err     error
	created *Order
}

func (w *stubWriter) create(ctx context.Context, o *Order, items []OrderItem, at time.Time, clearCart func(tx *gorm.DB) error) error {
	if w.err != nil {
		return w.err
	}
	o.ID = 1
	o.OrderNumber = NumberFor(at, 1)
	for i := range items {
		items[i].OrderID = o.ID
	}
	w.created = o
	return clearCart(nil)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func readySummary() *checkout.Summary {
	lines := []cart.CartLine{
		{ID: 10, ProductID: 3, ProductName: "Dark Chocolate Fudge Cake", UnitPrice: 55000, Quantity: 1},
		{ID: 11, ProductID: 7, ProductName: "Butter Cookies Box", UnitPrice: 18000, Quantity: 2},
	}
	return &checkout.Summary{
		State: checkout.State{
			RecipientName: "Nok",
			Phone:         "0812345678",
			Address:       "99 Sukhumvit Rd, Bangkok",
			DistanceKm:    4,
		},
		Quote: pricing.Quote{
			Subtotal:    91000,
			ShippingFee: 4000,
			Total:       95000,
		},
		Readiness: checkout.Readiness{Ready: true},
		Cart:      &cart.CartResponse{Items: lines, Subtotal: 91000, Count: 2},
	}
}

func newSubmitService(store *stubSlipStore, carts *stubCarts, checkouts *stubCheckouts, pub *stubPublisher, writer *stubWriter) *Service {
	s := NewService(nil, store, "slips", carts, checkouts, pub, nil, testLogger())
	s.writer = writer
	return s
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the priced snapshot", func(t *testing.T) {
		store := &stubSlipStore{}
		carts := &stubCarts{}
		checkouts := &stubCheckouts{summary: readySummary()}
		pub := &stubPublisher{}
		writer := &stubWriter{}
		s := newSubmitService(store, carts, checkouts, pub, writer)

		o, err := s.Submit(ctx, 7, "nok@example.com", &Slip{Filename: "slip.jpg", Content: strings.NewReader("img")})
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}

		if o.Subtotal != 91000 || o.ShippingFee != 4000 || o.Total != 95000 {
			t.Errorf("persisted totals = %d/%d/%d, want 91000/4000/95000", o.Subtotal, o.ShippingFee, o.Total)
		}
		if len(o.Items) != 2 || o.Items[0].ProductName != "Dark Chocolate Fudge Cake" || o.Items[1].Quantity != 2 {
			t.Errorf("items not copied from the priced cart snapshot: %+v", o.Items)
		}
		if o.Status != StatusPending {
			t.Errorf("status = %q, want %q", o.Status, StatusPending)
		}
		if o.OrderNumber == "" {
			t.Error("expected an order number to be assigned")
		}
		if !carts.cleared {
			t.Error("expected the cart to be cleared inside the submission")
		}
		if !checkouts.cleared {
			t.Error("expected the checkout state to be cleared")
		}
		if len(store.deleted) != 0 {
			t.Errorf("slip deleted on a successful submission: %v", store.deleted)
		}
		want := []string{cart.RealtimeTable + ":DELETE", RealtimeTable + ":INSERT"}
		if len(pub.events) != 2 || pub.events[0] != want[0] || pub.events[1] != want[1] {
			t.Errorf("published events = %v, want %v", pub.events, want)
		}
	})

	t.Run("incomplete checkout is rejected before the slip is stored", func(t *testing.T) {
		summary := readySummary()
		summary.Readiness = checkout.Readiness{Missing: []string{"cart", "recipient_name"}}
		summary.Cart = &cart.CartResponse{}
		store := &stubSlipStore{}
		s := newSubmitService(store, &stubCarts{}, &stubCheckouts{summary: summary}, &stubPublisher{}, &stubWriter{})

		_, err := s.Submit(ctx, 7, "", &Slip{Filename: "slip.jpg", Content: strings.NewReader("img")})

		var incomplete *CheckoutIncompleteError
		if !errors.As(err, &incomplete) {
			t.Fatalf("Submit() error = %v, want CheckoutIncompleteError", err)
		}
		if len(incomplete.Missing) != 2 || incomplete.Missing[0] != "cart" {
			t.Errorf("missing fields = %v", incomplete.Missing)
		}
		if len(store.puts) != 0 {
			t.Errorf("slip stored despite rejection: %v", store.puts)
		}
	})

	t.Run("missing slip is rejected", func(t *testing.T) {
		s := newSubmitService(&stubSlipStore{}, &stubCarts{}, &stubCheckouts{summary: readySummary()}, &stubPublisher{}, &stubWriter{})

		if _, err := s.Submit(ctx, 7, "", nil); !errors.Is(err, ErrSlipRequired) {
			t.Errorf("Submit(nil slip) error = %v, want ErrSlipRequired", err)
		}
	})

	t.Run("failed transaction removes the stored slip", func(t *testing.T) {
		store := &stubSlipStore{}
		checkouts := &stubCheckouts{summary: readySummary()}
		pub := &stubPublisher{}
		writer := &stubWriter{err: errors.New("insert failed")}
		s := newSubmitService(store, &stubCarts{}, checkouts, pub, writer)

		_, err := s.Submit(ctx, 7, "", &Slip{Filename: "slip.jpg", Content: strings.NewReader("img")})
		if err == nil {
			t.Fatal("Submit() expected an error")
		}
		if len(store.puts) != 1 {
			t.Fatalf("slip puts = %d, want 1", len(store.puts))
		}
		if len(store.deleted) != 1 || store.deleted[0] != store.puts[0] {
			t.Errorf("slip not removed after aborted transaction: deleted=%v put=%v", store.deleted, store.puts)
		}
		if checkouts.cleared {
			t.Error("checkout state cleared despite a failed submission")
		}
		if len(pub.events) != 0 {
			t.Errorf("events published despite a failed submission: %v", pub.events)
		}
	})
}
