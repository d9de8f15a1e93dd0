package leaderboardhandlers

import (
	"github.com/Black-And-White-Club/frolf-league/app/eventbus"
	roundevents "github.com/Black-And-White-Club/frolf-league/app/modules/round/domain/events"
	"github.com/Black-And-White-Club/frolf-league/app/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// HandleRoundRecorded drops the standings snapshot whenever a ledger row is
// written. A payload that cannot be decoded still invalidates; the message is
// only a change signal.
func (h *LeaderboardHandlers) HandleRoundRecorded(msg *message.Message) error {
	h.service.Invalidate()

	ctx := msg.Context()
	payload, err := eventbus.Decode[roundevents.RoundRecordedPayloadV1](msg)
	if err != nil {
		h.logger.WarnContext(ctx, "Undecodable round recorded event",
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		return nil
	}

	h.logger.DebugContext(ctx, "Standings snapshot invalidated",
		attr.Player(payload.Player),
		attr.Week(payload.Week),
		attr.Bool("replaced", payload.Replaced),
		attr.String("correlation_id", middleware.MessageCorrelationID(msg)),
	)
	return nil
}
