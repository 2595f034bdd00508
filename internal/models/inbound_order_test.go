package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeInboundStatus(t *testing.T) {
	assert.Equal(t, InboundStatusCreated, NormalizeInboundStatus("draft"))
	assert.Equal(t, InboundStatusReceiving, NormalizeInboundStatus("in_progress"))
	assert.Equal(t, InboundStatusReceived, NormalizeInboundStatus("completed"))
	assert.Equal(t, InboundStatusReceiving, NormalizeInboundStatus("receiving"))
	assert.Equal(t, InboundStatus("bogus"), NormalizeInboundStatus("bogus"))
	assert.False(t, NormalizeInboundStatus("bogus").Valid())
}

func TestInboundStatusAcceptsReceiving(t *testing.T) {
	assert.True(t, InboundStatusReceiving.AcceptsReceiving())
	assert.True(t, InboundStatusProblem.AcceptsReceiving())
	assert.True(t, InboundStatusMisSort.AcceptsReceiving())
	assert.False(t, InboundStatusCreated.AcceptsReceiving())
	assert.False(t, InboundStatusReadyForReceiving.AcceptsReceiving())
	assert.False(t, InboundStatusReceived.AcceptsReceiving())
	assert.False(t, InboundStatusCancelled.AcceptsReceiving())
}

func TestInboundStatusTerminal(t *testing.T) {
	assert.True(t, InboundStatusReceived.Terminal())
	assert.True(t, InboundStatusCancelled.Terminal())
	assert.False(t, InboundStatusProblem.Terminal())
	assert.False(t, InboundStatusMisSort.Terminal())
}

func TestLineStatusSettled(t *testing.T) {
	assert.True(t, LineStatusFullyReceived.Settled())
	assert.True(t, LineStatusOverReceived.Settled())
	assert.True(t, LineStatusCancelled.Settled())
	assert.False(t, LineStatusOpen.Settled())
	assert.False(t, LineStatusPartiallyReceived.Settled())
	assert.False(t, LineStatusMisSort.Settled())
}

func TestReceiveTargetValid(t *testing.T) {
	lineID := uuid.New()
	itemID := uuid.New()

	assert.True(t, ReceiveTarget{LineID: &lineID}.Valid())
	assert.True(t, ReceiveTarget{ItemID: &itemID}.Valid())
	assert.False(t, ReceiveTarget{}.Valid())
	assert.False(t, ReceiveTarget{LineID: &lineID, ItemID: &itemID}.Valid())
}
