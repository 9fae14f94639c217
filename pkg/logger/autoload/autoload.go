// Package autoload configures the global logger from the environment as a
// side effect of being imported:
//
//	import _ "github.com/petersparlor/parlor-fulfillment/pkg/logger/autoload"
package autoload

import (
	configx "github.com/petersparlor/parlor-fulfillment/pkg/config"
	logx "github.com/petersparlor/parlor-fulfillment/pkg/logger"
)

func init() {
	logx.Init(*configx.MustNew[logx.Config]("LOG"))
}
