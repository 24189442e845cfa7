package models

import "testing"

func TestPaymentStatusFor(t *testing.T) {
	cases := []struct {
		name  string
		paid  float64
		total float64
		want  PaymentStatus
	}{
		{"nothing paid", 0, 100, PaymentOpen},
		{"partially paid", 40, 100, PaymentPartial},
		{"exactly paid", 100, 100, PaymentPaid},
		{"overpaid", 130, 100, PaymentPaid},
		{"zero total", 0, 0, PaymentOpen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PaymentStatusFor(tc.paid, tc.total); got != tc.want {
				t.Fatalf("PaymentStatusFor(%v, %v) = %s, want %s", tc.paid, tc.total, got, tc.want)
			}
		})
	}
}

func TestAllowedTransitionTerminals(t *testing.T) {
	terminals := []AppointmentStatus{AppointmentCompleted, AppointmentCancelled, AppointmentNoShow}
	all := []AppointmentStatus{
		AppointmentPending, AppointmentConfirmed, AppointmentInProgress,
		AppointmentCompleted, AppointmentCancelled, AppointmentNoShow,
	}
	for _, from := range terminals {
		for _, to := range all {
			if AllowedTransition(from, to) {
				t.Fatalf("terminal status %s must not transition to %s", from, to)
			}
		}
	}
}
