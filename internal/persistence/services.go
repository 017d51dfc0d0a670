package persistence

import (
	"github.com/zhulik/pal"

	"groupme/internal/core"
)

func Provide() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.DB](&DB{}),
	)
}

func ProvideMigrator() pal.ServiceDef {
	return pal.ProvideList(
		pal.Provide[core.Migrator](&Migrator{}),
	)
}
