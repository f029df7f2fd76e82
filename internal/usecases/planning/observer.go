package planning

import (
	"github.com/vfg2006/media-planner-api/internal/solver"
	"github.com/vfg2006/media-planner-api/pkg/log"
)

// iterationLogger registra cada iteração da busca em nível debug
func iterationLogger(l log.Logger) solver.Observer {
	return func(it solver.Iteration) {
		l.WithFields(log.Fields{
			"iteration":  it.Number,
			"x":          it.X,
			"calculated": it.Calculated,
		}).Debug("solver: iteração")
	}
}
