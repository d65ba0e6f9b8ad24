package quotations

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/procuredesk/internal/platform/webhook"
	"github.com/odyssey-erp/procuredesk/internal/procure/procuretest"
)

const (
	quotationUUID = "0b7e6a52-3c55-4f0e-8a3b-8d6c1d3f2a10"
	lpoUUID       = "c2f0e1d4-6a0b-4b8e-9b7c-1f2e3d4c5b6a"
)

func TestListFilters(t *testing.T) {
	backend, caller := procuretest.New(t, "quotation")
	backend.Respond(pathList, http.StatusOK, `[{"quotationUuid":"`+quotationUUID+`","status":"PENDING","totalAmount":10.5,"currency":"OMR"}]`)

	quotations, err := NewClient(caller).List(context.Background(), Filter{Department: "Ops"})
	require.NoError(t, err)
	require.Len(t, quotations, 1)
	require.Equal(t, StatusPending, quotations[0].Status)
	require.Equal(t, "department=Ops", backend.Last(t).RawQuery)
}

func TestGetValidatesUUID(t *testing.T) {
	backend, caller := procuretest.New(t, "quotation")
	backend.Respond(pathGet, http.StatusOK, `{"quotationUuid":"`+quotationUUID+`","title":"Laptops"}`)

	client := NewClient(caller)
	_, err := client.Get(context.Background(), "")
	require.ErrorIs(t, err, webhook.ErrValidation)

	quotation, err := client.Get(context.Background(), quotationUUID)
	require.NoError(t, err)
	require.Equal(t, "Laptops", quotation.Title)
	require.Len(t, backend.Requests(), 1)
}

func TestUploadReturnsQuotationUUID(t *testing.T) {
	backend, caller := procuretest.New(t, "quotation")
	backend.Respond(pathUpload, http.StatusOK, `{"success":true,"quotationUuid":"`+quotationUUID+`"}`)

	result, err := NewClient(caller).Upload(context.Background(), UploadInput{
		File:        webhook.File{Name: "q.pdf", Content: strings.NewReader("pdf")},
		RequestedBy: "u-9",
		Title:       " Laptops ",
	})
	require.NoError(t, err)
	require.Equal(t, quotationUUID, result.QuotationUUID)
	last := backend.Last(t)
	require.Equal(t, "Laptops", last.Form["title"])
	require.Equal(t, "q.pdf", last.FileName)
}

func TestSelectReturnsLPO(t *testing.T) {
	backend, caller := procuretest.New(t, "quotation")
	backend.Respond(pathSelect, http.StatusOK, `{"success":true,"lpoUuid":"`+lpoUUID+`","lpoNumber":"LPO-2024-001"}`)

	result, err := NewClient(caller).Select(context.Background(), SelectInput{QuotationUUID: quotationUUID, UserID: "u-1"})
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "LPO-2024-001", result.LPONumber)

	var sent map[string]any
	backend.Last(t).DecodeBody(t, &sent)
	require.Equal(t, quotationUUID, sent["quotationUuid"])
	require.NotContains(t, sent, "justification")
}

func TestSelectApplicationFailure(t *testing.T) {
	backend, caller := procuretest.New(t, "quotation")
	backend.Respond(pathSelect, http.StatusOK, `{"success":false,"error":"quotation expired"}`)

	result, err := NewClient(caller).Select(context.Background(), SelectInput{QuotationUUID: quotationUUID, UserID: "u-1"})
	require.NoError(t, err)
	require.False(t, result.Success)
	require.Equal(t, "quotation expired", result.Error)
}

func TestListLPOsAndDecision(t *testing.T) {
	backend, caller := procuretest.New(t, "quotation")
	backend.Respond(pathLPOs, http.StatusOK, `[{"lpoUuid":"`+lpoUUID+`","lpoNumber":"LPO-1","status":"PENDING_APPROVAL"}]`)
	backend.Respond(pathDecision, http.StatusOK, `{"success":true}`)

	client := NewClient(caller)
	lpos, err := client.ListLPOs(context.Background(), LPOFilter{Status: LPOPendingApproval})
	require.NoError(t, err)
	require.Len(t, lpos, 1)
	require.True(t, lpos[0].Status.Valid())
	require.Equal(t, "status=PENDING_APPROVAL", backend.Last(t).RawQuery)

	result, err := client.ApproveLPO(context.Background(), LPODecision{LPOUUID: lpoUUID, Approve: true, UserID: "u-2"})
	require.NoError(t, err)
	require.True(t, result.Success)

	var sent LPODecision
	backend.Last(t).DecodeBody(t, &sent)
	require.True(t, sent.Approve)
	require.Equal(t, "u-2", sent.UserID)
}

func TestApproveLPORequiresUser(t *testing.T) {
	backend, caller := procuretest.New(t, "quotation")

	_, err := NewClient(caller).ApproveLPO(context.Background(), LPODecision{LPOUUID: lpoUUID})
	require.ErrorIs(t, err, webhook.ErrValidation)
	require.Empty(t, backend.Requests())
}
