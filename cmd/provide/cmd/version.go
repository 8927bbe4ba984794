package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the CLI version and the detected project.",
		Usage: "provide version",
		Run:   runVersion,
	})
}

func runVersion(env *Env, _ []string) error {
	fmt.Fprintf(env.Out, "provide CLI version %s (built %s)\n", Version, BuildTime)
	if env.Config.ModulePath != "" {
		fmt.Fprintf(env.Out, "project: %s (%s)\n", env.Config.ProjectName, env.Config.ModulePath)
	}
	return nil
}
