// Package cli contains the armsim command line interface.
package cli

import (
	"io"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"go.viam.com/armsim/utils"
)

const (
	// Flags.
	generalFlagDebug    = "debug"
	generalFlagScenario = "scenario"
	generalFlagJSON     = "json"

	armFlagLinks  = "links"
	armFlagAngles = "angles"

	ikFlagX       = "x"
	ikFlagY       = "y"
	ikFlagElbow   = "elbow"
	ikFlagNoClamp = "no-clamp"
	ikFlagStrict  = "strict"
	ikFlagAll     = "all"

	planFlagStart    = "start"
	planFlagEnd      = "end"
	planFlagTargetX  = "target-x"
	planFlagTargetY  = "target-y"
	planFlagDuration = "duration"
	planFlagFPS      = "fps"
	planFlagEasing   = "easing"
	planFlagTrail    = "trail"
	planFlagInstant  = "instant"

	loggerMetadataKey = "logger"
)

// Flags are built per app since urfave flags keep state once applied.
func linksFlag() cli.Flag {
	return &cli.Float64SliceFlag{
		Name:  armFlagLinks,
		Usage: "link lengths from the base outward, e.g. 7,10",
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  generalFlagJSON,
		Usage: "print JSON instead of a table",
	}
}

func ikFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  ikFlagElbow,
			Usage: "elbow branch, elbow_up or elbow_down",
		},
		&cli.BoolFlag{
			Name:  ikFlagNoClamp,
			Usage: "do not clamp unreachable targets to the workspace",
		},
		&cli.BoolFlag{
			Name:  ikFlagStrict,
			Usage: "fail on unreachable targets instead of solving for the nearest point (requires --no-clamp)",
		},
	}
}

func motionFlags() []cli.Flag {
	return []cli.Flag{
		linksFlag(),
		&cli.Float64SliceFlag{
			Name:  planFlagStart,
			Usage: "start joint angles in degrees",
		},
		&cli.Float64SliceFlag{
			Name:  planFlagEnd,
			Usage: "end joint angles in degrees",
		},
		&cli.Float64Flag{
			Name:  planFlagTargetX,
			Usage: "x of an end effector target that replaces --end",
		},
		&cli.Float64Flag{
			Name:  planFlagTargetY,
			Usage: "y of an end effector target that replaces --end",
		},
		&cli.Float64Flag{
			Name:  planFlagDuration,
			Usage: "motion duration in seconds (0 keeps the scenario value or the 3s default)",
		},
		&cli.Float64Flag{
			Name:  planFlagFPS,
			Usage: "frames per second (0 keeps the scenario value or the 30fps default)",
		},
		&cli.StringFlag{
			Name:  planFlagEasing,
			Usage: "easing, one of linear, cosine or smoothstep",
		},
		&cli.BoolFlag{
			Name:  planFlagTrail,
			Usage: "report the length of the path traced by the end effector",
		},
	}
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app := &cli.App{
		Name:            "armsim",
		Usage:           "plan and simulate the motion of a planar serial arm",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:    generalFlagScenario,
				Aliases: []string{"s"},
				Usage:   "load the scenario from `FILE` (YAML or JSON)",
			},
		},
		Before: func(c *cli.Context) error {
			var logger golog.Logger
			if c.Bool(generalFlagDebug) {
				logger = golog.NewDebugLogger("armsim")
			} else {
				logger = zap.NewNop().Sugar()
			}
			c.App.Metadata = map[string]interface{}{loggerMetadataKey: logger}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "fk",
				Usage: "compute the position of every joint for the given angles",
				Flags: []cli.Flag{
					linksFlag(),
					&cli.Float64SliceFlag{
						Name:  armFlagAngles,
						Usage: "joint angles in degrees, relative to the previous link",
					},
					jsonFlag(),
				},
				Action: ForwardKinematicsAction,
			},
			{
				Name:  "ik",
				Usage: "solve the joint angles that put a two link arm's end effector at a point",
				Flags: append([]cli.Flag{
					linksFlag(),
					&cli.Float64Flag{
						Name:  ikFlagX,
						Usage: "target x",
					},
					&cli.Float64Flag{
						Name:  ikFlagY,
						Usage: "target y",
					},
					&cli.BoolFlag{
						Name:  ikFlagAll,
						Usage: "print both elbow solutions",
					},
					jsonFlag(),
				}, ikFlags()...),
				Action: InverseKinematicsAction,
			},
			{
				Name:   "plan",
				Usage:  "print every frame of the joint space motion",
				Flags:  append(append([]cli.Flag{jsonFlag()}, motionFlags()...), ikFlags()...),
				Action: PlanAction,
			},
			{
				Name:  "play",
				Usage: "play the motion on a simulated arm, printing each frame as it is reached",
				Flags: append(append([]cli.Flag{
					&cli.BoolFlag{
						Name:  planFlagInstant,
						Usage: "apply frames back to back instead of one per 1/fps seconds",
					},
				}, motionFlags()...), ikFlags()...),
				Action: PlayAction,
			},
			{
				Name:   "workspace",
				Usage:  "print the annulus the arm can reach",
				Flags:  []cli.Flag{linksFlag(), jsonFlag()},
				Action: WorkspaceAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of scenario files",
				Action: SchemaAction,
			},
		},
	}
	return app
}

func loggerFrom(c *cli.Context) golog.Logger {
	logger, err := utils.LookupValue[golog.Logger](c.App.Metadata, loggerMetadataKey)
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger
}
