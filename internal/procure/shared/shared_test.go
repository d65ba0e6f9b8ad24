package shared

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
)

func TestScaleFollowsCurrencyMinorUnits(t *testing.T) {
	require.Equal(t, int32(3), Scale("OMR"))
	require.Equal(t, int32(3), Scale("kwd"))
	require.Equal(t, int32(2), Scale("USD"))
	require.Equal(t, int32(0), Scale("JPY"))
	require.Equal(t, int32(2), Scale("???"))
}

func TestFormatMoney(t *testing.T) {
	require.Equal(t, "OMR 1,234.500", FormatMoney("OMR", MustAmount("1234.5")))
	require.Equal(t, "OMR 0.125", FormatMoney("", MustAmount("0.1249")))
	require.Equal(t, "USD -1,000,000.00", FormatMoney("usd", MustAmount("-1000000")))
	require.Equal(t, "OMR 12.300", Money{Currency: "OMR", Amount: MustAmount("12.3")}.String())
}

func TestMoneyRoundUsesCurrencyScale(t *testing.T) {
	m := Money{Currency: "OMR", Amount: MustAmount("10.12345")}.Round()
	require.Equal(t, "10.123", m.Amount.String())
}

func TestAmountJSON(t *testing.T) {
	var payload struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
		C Amount `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":12.500,"b":"3.125","c":null}`), &payload))
	require.True(t, payload.A.Equal(MustAmount("12.5").Decimal))
	require.True(t, payload.B.Equal(MustAmount("3.125").Decimal))
	require.True(t, payload.C.IsZero())

	data, err := json.Marshal(struct {
		Amount Amount `json:"amount"`
	}{Amount: MustAmount("99.250")})
	require.NoError(t, err)
	require.JSONEq(t, `{"amount":99.25}`, string(data))
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		D Date `json:"d"`
		E Date `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"2024-05-01","e":"2024-05-02T10:00:00Z"}`), &payload))
	require.Equal(t, "2024-05-01", payload.D.String())
	require.Equal(t, "2024-05-02", payload.E.String())

	data, err := json.Marshal(struct {
		D Date `json:"d"`
		Z Date `json:"z"`
	}{D: NewDate(2024, time.March, 9)})
	require.NoError(t, err)
	require.JSONEq(t, `{"d":"2024-03-09","z":null}`, string(data))

	_, err = ParseDate("09/03/2024")
	require.Error(t, err)
}

type sampleInput struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"omitempty,email"`
	Amount Amount `json:"amount" validate:"gt=0"`
	On     Date   `json:"on" validate:"required"`
}

func TestValidateReportsFieldsByJSONName(t *testing.T) {
	err := Validate(sampleInput{Email: "nope"})
	require.Error(t, err)
	require.True(t, errors.Is(err, webhook.ErrValidation))
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Equal(t, "required", fields["name"])
	require.Equal(t, "email", fields["email"])
	require.Equal(t, "gt", fields["amount"])
	require.Equal(t, "required", fields["on"])

	ok := sampleInput{Name: "x", Amount: MustAmount("0.001"), On: NewDate(2024, time.January, 1)}
	require.NoError(t, Validate(ok))
}

func TestRequireUUID(t *testing.T) {
	require.NoError(t, RequireUUID("uuid", "6f1c1d0e-4b1a-4c57-9a43-7f0c2b1e9d11"))
	err := RequireUUID("invoiceUuid", "42")
	require.ErrorIs(t, err, webhook.ErrValidation)
	require.Contains(t, err.Error(), "invoiceUuid")
}
