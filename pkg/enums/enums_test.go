package enums

import "testing"

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus("shipped")
	if err != nil || got != OrderStatusShipped {
		t.Fatalf("expected shipped, got %q err=%v", got, err)
	}
	if _, err := ParseOrderStatus("lost"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestPaymentMethodAndRoleValidity(t *testing.T) {
	if !PaymentMethodCashOnDelivery.IsValid() {
		t.Fatal("cash_on_delivery should be valid")
	}
	if PaymentMethod("bitcoin").IsValid() {
		t.Fatal("bitcoin should be invalid")
	}
	if role, err := ParseUserRole("admin"); err != nil || role != UserRoleAdmin {
		t.Fatalf("expected admin role, got %q err=%v", role, err)
	}
	if _, err := ParseProductCategory("weapons"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}
