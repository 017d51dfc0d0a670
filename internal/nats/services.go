package nats

import (
	"github.com/zhulik/pal"

	"groupme/internal/core"
)

func Provide() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.EventPublisher](&NATS{}),
	)
}
