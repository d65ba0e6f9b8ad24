package payments

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/procuretest"
	"github.com/odyssey-erp/procuredesk/internal/procure/shared"
)

const invoiceUUID = "6f1c1d0e-4b1a-4c57-9a43-7f0c2b1e9d11"

func bankTransfer() RecordPaymentData {
	return RecordPaymentData{
		InvoiceUUID: invoiceUUID,
		Amount:      shared.MustAmount("150.12345"),
		Currency:    "omr",
		Method:      MethodBankTransfer,
		PaymentDate: shared.NewDate(2024, time.July, 1),
		Reference:   " TRX-9 ",
		UserID:      "u-1",
	}
}

func TestListFilters(t *testing.T) {
	backend, caller := procuretest.New(t, "payment")
	backend.Respond(pathList, http.StatusOK, `[{"paymentId":3,"amount":"40.000","currency":"OMR","method":"CASH","status":"PARTIAL"}]`)

	payments, err := NewClient(caller).List(context.Background(), Filter{Method: MethodCash})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.Equal(t, "OMR 40.000", payments[0].Value().String())
	require.Equal(t, "method=CASH", backend.Last(t).RawQuery)
}

func TestRecordRoundsAndNormalizes(t *testing.T) {
	backend, caller := procuretest.New(t, "payment")
	backend.Respond(pathRecord, http.StatusOK, `{"success":true,"paymentId":88}`)

	result, err := NewClient(caller).Record(context.Background(), bankTransfer())
	require.NoError(t, err)
	require.Equal(t, int64(88), result.PaymentID)

	var sent map[string]any
	backend.Last(t).DecodeBody(t, &sent)
	require.Equal(t, "OMR", sent["currency"])
	require.Equal(t, 150.123, sent["amount"])
	require.Equal(t, "TRX-9", sent["reference"])
	require.Equal(t, "2024-07-01", sent["paymentDate"])
	require.NotContains(t, sent, "chequeDate")
}

func TestRecordRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5", "0.0004"} {
		t.Run(amount, func(t *testing.T) {
			backend, caller := procuretest.New(t, "payment")
			data := bankTransfer()
			data.Amount = shared.MustAmount(amount)

			_, err := NewClient(caller).Record(context.Background(), data)
			var fields shared.FieldErrors
			require.ErrorAs(t, err, &fields)
			require.Equal(t, "gt", fields["amount"])
			require.Empty(t, backend.Requests())
		})
	}
}

func TestRecordPDCNeedsChequeDetails(t *testing.T) {
	backend, caller := procuretest.New(t, "payment")
	backend.Respond(pathRecord, http.StatusOK, `{"success":true,"paymentId":5}`)
	client := NewClient(caller)

	data := bankTransfer()
	data.Method = MethodPDC
	_, err := client.Record(context.Background(), data)
	var fields shared.FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Equal(t, "required_if", fields["chequeDate"])
	require.Equal(t, "required_if", fields["chequeNumber"])

	data.ChequeNumber = "000123"
	data.ChequeDate = shared.NewDate(2024, time.August, 15)
	_, err = client.Record(context.Background(), data)
	require.NoError(t, err)
	require.Len(t, backend.Requests(), 1)
}

func TestRecordApplicationFailure(t *testing.T) {
	backend, caller := procuretest.New(t, "payment")
	backend.Respond(pathRecord, http.StatusOK, `{"success":false,"error":"amount exceeds balance"}`)

	result, err := NewClient(caller).Record(context.Background(), bankTransfer())
	require.NoError(t, err)
	require.True(t, result.Failed())
	require.Equal(t, "amount exceeds balance", result.Error)
}

func TestPDCListAndUpdate(t *testing.T) {
	backend, caller := procuretest.New(t, "payment")
	backend.Respond(pathPDCs, http.StatusOK, `[{"paymentId":5,"chequeNumber":"000123","chequeDate":"2024-08-15","status":"PENDING","amount":10,"currency":"OMR"}]`)
	backend.Respond(pathPDCStatus, http.StatusOK, `{"success":true}`)
	client := NewClient(caller)

	cheques, err := client.ListPDCs(context.Background(), PDCFilter{})
	require.NoError(t, err)
	require.Len(t, cheques, 1)
	require.Empty(t, backend.Last(t).RawQuery)
	require.True(t, cheques[0].Due(shared.NewDate(2024, time.August, 15)))
	require.False(t, cheques[0].Due(shared.NewDate(2024, time.August, 14)))

	result, err := client.UpdatePDC(context.Background(), PDCUpdate{PaymentID: 5, Status: PDCCleared, UserID: "u-1"})
	require.NoError(t, err)
	require.True(t, result.Success)

	var sent map[string]any
	backend.Last(t).DecodeBody(t, &sent)
	require.Equal(t, "CLEARED", sent["status"])
}

func TestUpdatePDCValidatesStatus(t *testing.T) {
	_, caller := procuretest.New(t, "payment")

	_, err := NewClient(caller).UpdatePDC(context.Background(), PDCUpdate{PaymentID: 5, Status: "LOST", UserID: "u-1"})
	require.ErrorIs(t, err, webhook.ErrValidation)
}

func TestEnumsValid(t *testing.T) {
	require.True(t, MethodPDC.Valid())
	require.False(t, Method("WIRE").Valid())
	require.True(t, StatusPaid.Valid())
	require.True(t, PDCBounced.Valid())
}
