// ABOUTME: Tests for deal MCP tool handlers
// ABOUTME: Covers defaults, stage-driven probability, and not-found errors
package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDealDefaults(t *testing.T) {
	ws, _ := setupTestWorkspace(t)
	handler := NewDealHandlers(ws, fixedClock)

	_, out, err := handler.AddDeal(context.Background(), nil, AddDealInput{
		Name:    "Enterprise License Deal",
		Value:   50000,
		Contact: "Alice Johnson",
		Company: "Acme Corp",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, out.ID)
	assert.Equal(t, "lead", out.Stage)
	assert.Equal(t, 10, out.Probability)
	assert.Equal(t, "2025-02-16", out.CloseDate)
	assert.InDelta(t, 5000, out.Weighted, 0.001)
}

func TestAddDealStageAndOverride(t *testing.T) {
	ws, _ := setupTestWorkspace(t)
	handler := NewDealHandlers(ws, fixedClock)

	_, out, err := handler.AddDeal(context.Background(), nil, AddDealInput{
		Name: "Won", Value: 100, Stage: "closed-won", Contact: "Bob Smith", Company: "TechStart",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Probability)

	_, out, err = handler.AddDeal(context.Background(), nil, AddDealInput{
		Name: "Hopeful", Value: 100, Stage: "proposal", Probability: intPtr(65),
		CloseDate: "2025-06-01", Contact: "Bob Smith", Company: "TechStart",
	})
	require.NoError(t, err)
	assert.Equal(t, 65, out.Probability)
	assert.Equal(t, "2025-06-01", out.CloseDate)

	_, _, err = handler.AddDeal(context.Background(), nil, AddDealInput{
		Name: "Bad date", CloseDate: "06/01/2025", Contact: "B", Company: "C",
	})
	assert.ErrorContains(t, err, "close_date")
}

func TestUpdateDealStageResetsProbability(t *testing.T) {
	ws, _ := setupTestWorkspace(t)
	handler := NewDealHandlers(ws, fixedClock)

	_, out, err := handler.UpdateDeal(context.Background(), nil, UpdateDealInput{ID: 2, Stage: "negotiation"})
	require.NoError(t, err)
	assert.Equal(t, 75, out.Probability)

	_, out, err = handler.UpdateDeal(context.Background(), nil, UpdateDealInput{ID: 2, Probability: intPtr(90)})
	require.NoError(t, err)
	assert.Equal(t, "negotiation", out.Stage)
	assert.Equal(t, 90, out.Probability)

	_, out, err = handler.UpdateDeal(context.Background(), nil, UpdateDealInput{ID: 2, Stage: "closed-won", Probability: intPtr(95)})
	require.NoError(t, err)
	assert.Equal(t, 95, out.Probability, "explicit probability wins over the stage default")

	_, _, err = handler.UpdateDeal(context.Background(), nil, UpdateDealInput{ID: 99, Name: "x"})
	assert.EqualError(t, err, "deal 99 not found")
}

func TestChangeDealStage(t *testing.T) {
	ws, feed := setupTestWorkspace(t)
	handler := NewDealHandlers(ws, fixedClock)

	_, out, err := handler.ChangeDealStage(context.Background(), nil, ChangeDealStageInput{ID: 1, Stage: "closed-won"})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Probability)
	assert.Equal(t, 1, feed.Len())

	_, _, err = handler.ChangeDealStage(context.Background(), nil, ChangeDealStageInput{ID: 1, Stage: "won"})
	assert.ErrorContains(t, err, "invalid stage")

	_, _, err = handler.ChangeDealStage(context.Background(), nil, ChangeDealStageInput{ID: 1, Stage: "lead", Probability: intPtr(101)})
	assert.Error(t, err)

	_, _, err = handler.ChangeDealStage(context.Background(), nil, ChangeDealStageInput{ID: 7, Stage: "lead"})
	assert.EqualError(t, err, "deal 7 not found")
}

func TestFindAndDeleteDeals(t *testing.T) {
	ws, _ := setupTestWorkspace(t)
	handler := NewDealHandlers(ws, fixedClock)

	_, out, err := handler.FindDeals(context.Background(), nil, FindDealsInput{Stage: "negotiation"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	_, out, err = handler.FindDeals(context.Background(), nil, FindDealsInput{Query: "carol"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "Global Systems Upgrade", out.Deals[0].Name)

	_, del, err := handler.DeleteDeal(context.Background(), nil, DeleteInput{ID: 3})
	require.NoError(t, err)
	assert.True(t, del.Deleted)
	assert.Equal(t, 3, ws.Deals.Len())
}
