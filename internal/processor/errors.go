package processor

import (
	dErrors "creditlines/pkg/domain-errors"
)

func errUnexpectedMessage(msg *EventMessage) error {
	return dErrors.Newf(dErrors.CodeInvalidInput,
		"cannot process message type %s with feature %s", msg.MessageType, msg.FeatureType)
}
