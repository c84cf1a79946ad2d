package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Mendozape/crud-sub000/app/ledger"
	"github.com/Mendozape/crud-sub000/app/models"
)

// fakeStore is an in-memory ledger.Store with the same settled-month
// semantics as the Postgres implementation, guarded by a mutex so the
// concurrency test can hammer it from multiple goroutines.
type fakeStore struct {
	mu        sync.Mutex
	payments  map[string]*models.Payment
	feeAmount float64
	nextID    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{payments: map[string]*models.Payment{}, feeAmount: 500}
}

func (s *fakeStore) RegisterMonths(_ context.Context, p ledger.RegisterParams) ([]*models.Payment, error) {
	return s.register(p), nil
}

func (s *fakeStore) register(p ledger.RegisterParams) []*models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()

	settled := map[int]bool{}
	for _, row := range s.payments {
		if row.PropertyID == p.PropertyID && row.FeeID == p.FeeID && row.Year == p.Year && row.IsActive() {
			settled[row.Month] = true
		}
	}

	status := p.Status
	if status == "" {
		status = models.PaymentPaid
	}

	created := []*models.Payment{}
	for _, m := range p.Months {
		if settled[m] {
			continue
		}
		s.nextID++
		row := &models.Payment{
			ID:          fmt.Sprintf("pay-%d", s.nextID),
			PropertyID:  p.PropertyID,
			FeeID:       p.FeeID,
			Month:       m,
			Year:        p.Year,
			PaymentDate: p.PaymentDate,
			AmountPaid:  s.feeAmount,
			Status:      status,
			CreatedAt:   time.Now(),
		}
		s.payments[row.ID] = row
		created = append(created, row)
	}
	return created
}

func (s *fakeStore) CancelPayment(_ context.Context, id, reason, actorID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.payments[id]
	if !ok {
		return nil, ledger.ErrPaymentNotFound
	}
	if row.Status == models.PaymentCancelled {
		return nil, ledger.ErrAlreadyCancelled
	}
	now := time.Now()
	row.Status = models.PaymentCancelled
	row.CancellationReason = reason
	row.CancelledAt = &now
	if actorID != "" {
		row.CancelledBy = &actorID
	}
	return row, nil
}

func (s *fakeStore) UpdatePayment(_ context.Context, id string, upd ledger.UpdateParams) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.payments[id]
	if !ok {
		return nil, ledger.ErrPaymentNotFound
	}
	if row.Status == models.PaymentCancelled {
		return nil, ledger.ErrAlreadyCancelled
	}

	targetProperty := row.PropertyID
	if upd.PropertyID != nil {
		targetProperty = *upd.PropertyID
	}
	targetFee := row.FeeID
	if upd.FeeID != nil {
		targetFee = *upd.FeeID
	}
	for _, other := range s.payments {
		if other.ID != row.ID && other.IsActive() &&
			other.PropertyID == targetProperty && other.FeeID == targetFee &&
			other.Month == row.Month && other.Year == row.Year {
			return nil, ledger.ErrPeriodSettled
		}
	}

	row.PropertyID = targetProperty
	row.FeeID = targetFee
	if upd.PaymentDate != nil {
		row.PaymentDate = *upd.PaymentDate
	}
	return row, nil
}

func (s *fakeStore) GetPayment(_ context.Context, id string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.payments[id]
	if !ok {
		return nil, ledger.ErrPaymentNotFound
	}
	return row, nil
}

func (s *fakeStore) PaidMonths(_ context.Context, propertyID string, year int, feeID string) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[int]bool{}
	months := []int{}
	for _, row := range s.payments {
		if row.PropertyID != propertyID || row.Year != year || !row.IsActive() {
			continue
		}
		if feeID != "" && row.FeeID != feeID {
			continue
		}
		if !seen[row.Month] {
			seen[row.Month] = true
			months = append(months, row.Month)
		}
	}
	return months, nil
}

func (s *fakeStore) ListPayments(_ context.Context, f ledger.ListFilter) ([]*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := []*models.Payment{}
	for _, row := range s.payments {
		if f.PropertyID != "" && row.PropertyID != f.PropertyID {
			continue
		}
		if f.Year != 0 && row.Year != f.Year {
			continue
		}
		if f.Status != "" && string(row.Status) != f.Status {
			continue
		}
		list = append(list, row)
	}
	return list, nil
}

func newTestApp(store ledger.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"success": false, "error": err.Error()})
		},
	})

	app.Post("/api/payments", func(c *fiber.Ctx) error {
		c.Locals("user_id", "admin-1")
		return RegisterPaymentsAPI(c, store)
	})
	app.Post("/api/payments/:id/cancel", func(c *fiber.Ctx) error {
		c.Locals("user_id", "admin-1")
		return CancelPaymentAPI(c, store)
	})
	app.Put("/api/payments/:id", func(c *fiber.Ctx) error {
		c.Locals("user_id", "admin-1")
		return UpdatePaymentAPI(c, store)
	})
	app.Get("/api/payments/:property_id/:year", func(c *fiber.Ctx) error {
		return PaidMonthsAPI(c, store)
	})
	return app
}

func registerReq(t *testing.T, app *fiber.App, months []int) *http.Response {
	t.Helper()
	body, _ := json.Marshal(fiber.Map{
		"property_id":  "prop-1",
		"fee_id":       "fee-1",
		"months":       months,
		"year":         2026,
		"payment_date": "2026-03-15",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeData(t *testing.T, resp *http.Response) []map[string]interface{} {
	t.Helper()
	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal response %s: %v", raw, err)
	}
	return envelope.Data
}

func paidMonths(t *testing.T, app *fiber.App) []int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/payments/prop-1/2026", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Months []int `json:"months"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal response %s: %v", raw, err)
	}
	return envelope.Months
}

func TestRegisterIdempotent(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	resp := registerReq(t, app, []int{1, 2, 3})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first registration status = %d, want 201", resp.StatusCode)
	}
	if got := len(decodeData(t, resp)); got != 3 {
		t.Fatalf("first registration created %d rows, want 3", got)
	}

	resp = registerReq(t, app, []int{1, 2, 3})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("repeat registration status = %d, want 422", resp.StatusCode)
	}

	active := 0
	for _, row := range store.payments {
		if row.IsActive() {
			active++
		}
	}
	if active != 3 {
		t.Errorf("active rows after repeat = %d, want 3", active)
	}
}

func TestRegisterPartialOverlap(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	registerReq(t, app, []int{1})

	resp := registerReq(t, app, []int{1, 2, 3})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	data := decodeData(t, resp)
	if len(data) != 2 {
		t.Fatalf("created %d rows, want 2", len(data))
	}
	months := []int{int(data[0]["month"].(float64)), int(data[1]["month"].(float64))}
	if months[0] != 2 || months[1] != 3 {
		t.Errorf("created months = %v, want [2 3]", months)
	}
}

func TestCancelReopensMonth(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	resp := registerReq(t, app, []int{5})
	paymentID := decodeData(t, resp)[0]["id"].(string)

	if got := paidMonths(t, app); len(got) != 1 || got[0] != 5 {
		t.Fatalf("paid months after registration = %v, want [5]", got)
	}

	body, _ := json.Marshal(fiber.Map{"reason": "duplicate receipt"})
	req := httptest.NewRequest(http.MethodPost, "/api/payments/"+paymentID+"/cancel", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	cancelResp, err := app.Test(req)
	if err != nil {
		t.Fatalf("cancel request failed: %v", err)
	}
	if cancelResp.StatusCode != http.StatusOK {
		t.Fatalf("cancel status = %d, want 200", cancelResp.StatusCode)
	}

	if got := paidMonths(t, app); len(got) != 0 {
		t.Fatalf("paid months after cancellation = %v, want []", got)
	}

	resp = registerReq(t, app, []int{5})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("re-registration status = %d, want 201", resp.StatusCode)
	}
	if got := paidMonths(t, app); len(got) != 1 || got[0] != 5 {
		t.Errorf("paid months after re-registration = %v, want [5]", got)
	}
}

func TestCancelIsTerminal(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	resp := registerReq(t, app, []int{7})
	paymentID := decodeData(t, resp)[0]["id"].(string)

	cancel := func() *http.Response {
		body, _ := json.Marshal(fiber.Map{"reason": "entered in error"})
		req := httptest.NewRequest(http.MethodPost, "/api/payments/"+paymentID+"/cancel", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r, err := app.Test(req)
		if err != nil {
			t.Fatalf("cancel request failed: %v", err)
		}
		return r
	}

	if r := cancel(); r.StatusCode != http.StatusOK {
		t.Fatalf("first cancel status = %d, want 200", r.StatusCode)
	}
	firstAt := *store.payments[paymentID].CancelledAt

	if r := cancel(); r.StatusCode != http.StatusBadRequest {
		t.Fatalf("second cancel status = %d, want 400", r.StatusCode)
	}
	if !store.payments[paymentID].CancelledAt.Equal(firstAt) {
		t.Error("second cancel moved the cancellation timestamp")
	}
	if store.payments[paymentID].CancellationReason != "entered in error" {
		t.Error("second cancel altered the audit reason")
	}
}

func TestCancelReasonTooShort(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	resp := registerReq(t, app, []int{9})
	paymentID := decodeData(t, resp)[0]["id"].(string)

	body, _ := json.Marshal(fiber.Map{"reason": "no"})
	req := httptest.NewRequest(http.MethodPost, "/api/payments/"+paymentID+"/cancel", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r, err := app.Test(req)
	if err != nil {
		t.Fatalf("cancel request failed: %v", err)
	}
	if r.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("short-reason cancel status = %d, want 422", r.StatusCode)
	}
	if store.payments[paymentID].Status != models.PaymentPaid {
		t.Error("short-reason cancel mutated the payment")
	}
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(newFakeStore())

	tests := []struct {
		name string
		body fiber.Map
		want int
	}{
		{"missing ids", fiber.Map{"months": []int{1}, "year": 2026, "payment_date": "2026-01-01"}, 422},
		{"empty months", fiber.Map{"property_id": "p", "fee_id": "f", "months": []int{}, "year": 2026, "payment_date": "2026-01-01"}, 422},
		{"month out of range", fiber.Map{"property_id": "p", "fee_id": "f", "months": []int{13}, "year": 2026, "payment_date": "2026-01-01"}, 422},
		{"bad year", fiber.Map{"property_id": "p", "fee_id": "f", "months": []int{1}, "year": 1890, "payment_date": "2026-01-01"}, 422},
		{"bad date", fiber.Map{"property_id": "p", "fee_id": "f", "months": []int{1}, "year": 2026, "payment_date": "01/15/2026"}, 422},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/api/payments", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestUpdateRejectsSettledPeriod(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	resp := registerReq(t, app, []int{3})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("registration status = %d, want 201", resp.StatusCode)
	}

	body, _ := json.Marshal(fiber.Map{
		"property_id":  "prop-2",
		"fee_id":       "fee-1",
		"months":       []int{3},
		"year":         2026,
		"payment_date": "2026-03-20",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("second registration status = %d, want 201", resp.StatusCode)
	}
	otherID := decodeData(t, resp)[0]["id"].(string)

	// moving prop-2's payment onto prop-1's already-settled month must 409
	body, _ = json.Marshal(fiber.Map{"property_id": "prop-1"})
	req = httptest.NewRequest(http.MethodPut, "/api/payments/"+otherID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("conflicting update status = %d, want 409", resp.StatusCode)
	}
	if store.payments[otherID].PropertyID != "prop-2" {
		t.Error("rejected update still mutated the payment")
	}

	// a non-conflicting edit on the same payment still works
	body, _ = json.Marshal(fiber.Map{"payment_date": "2026-03-25"})
	req = httptest.NewRequest(http.MethodPut, "/api/payments/"+otherID, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("update request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("clean update status = %d, want 200", resp.StatusCode)
	}
}

func TestAmountSnapshotImmutable(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	resp := registerReq(t, app, []int{1})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("registration status = %d, want 201", resp.StatusCode)
	}
	firstID := decodeData(t, resp)[0]["id"].(string)

	// fee price hike after the first receipt
	store.feeAmount = 800

	resp = registerReq(t, app, []int{2})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("registration status = %d, want 201", resp.StatusCode)
	}
	secondID := decodeData(t, resp)[0]["id"].(string)

	if got := store.payments[firstID].AmountPaid; got != 500 {
		t.Errorf("first payment AmountPaid = %v, want the original 500", got)
	}
	if got := store.payments[secondID].AmountPaid; got != 800 {
		t.Errorf("second payment AmountPaid = %v, want the new 800", got)
	}

	total := 0.0
	for _, row := range store.payments {
		if row.Status == models.PaymentPaid && row.IsActive() {
			total += row.AmountPaid
		}
	}
	if total != 1300 {
		t.Errorf("income total = %v, want 1300 (500 + 800)", total)
	}
}

func TestCondonedMonthSettles(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	body, _ := json.Marshal(fiber.Map{
		"property_id":  "prop-1",
		"fee_id":       "fee-1",
		"months":       []int{6},
		"year":         2026,
		"payment_date": "2026-06-01",
		"status":       "condoned",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("condoned registration status = %d, want 201", resp.StatusCode)
	}

	if got := paidMonths(t, app); len(got) != 1 || got[0] != 6 {
		t.Errorf("paid months = %v, want [6]", got)
	}

	resp = registerReq(t, app, []int{6})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("re-registration over condoned month status = %d, want 422", resp.StatusCode)
	}
}

// Two concurrent registrations of the same month must produce exactly one
// active row.
func TestConcurrentRegistration(t *testing.T) {
	store := newFakeStore()

	var wg sync.WaitGroup
	params := ledger.RegisterParams{
		PropertyID:  "prop-1",
		FeeID:       "fee-1",
		Year:        2026,
		PaymentDate: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Months:      []int{4},
	}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.register(params)
		}()
	}
	wg.Wait()

	active := 0
	for _, row := range store.payments {
		if row.Month == 4 && row.IsActive() {
			active++
		}
	}
	if active != 1 {
		t.Errorf("active rows for the contested month = %d, want 1", active)
	}
}
