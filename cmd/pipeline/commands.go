package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/shortreel/internal/models"
	"github.com/spf13/cobra"
)

func newProjectCommand(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectCreateCommand(load))
	return cmd
}

func newProjectCreateCommand(load appLoader) *cobra.Command {
	var topic, aspect, scriptPath string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project from a JSON script file",
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := readScript(scriptPath)
			if err != nil {
				return err
			}
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			if aspect == "" {
				aspect = a.cfg.Render.AspectRatio
			}
			p, err := a.coord.CreateProject(cmd.Context(), topic, aspect, script)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "Video topic")
	cmd.Flags().StringVar(&aspect, "aspect", "", "Aspect ratio: 9:16, 16:9 or 1:1")
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON file with [{\"id\",\"text\",\"visualDescription\"}]")
	_ = cmd.MarkFlagRequired("topic")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func newVoiceoverCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "voiceover <project-id> <audio-file>",
		Short: "Attach a voiceover, transcribe it and align the script",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.coord.AttachVoiceover(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p.Timeline)
		},
	}
}

func newImagesCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "images <project-id>",
		Short: "Generate images for scenes that have none",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.coord.AcquireImages(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if len(resp.Failed) > 0 {
				return fmt.Errorf("%d scene(s) still need images", len(resp.Failed))
			}
			return nil
		},
	}
}

func newRenderCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "render <project-id>",
		Short: "Render the final video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.coord.Render(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("render failed: %s", resp.Error)
			}
			return nil
		},
	}
}

func newShowCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Print a project as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := a.coord.Project(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func readScript(path string) ([]models.ScriptScene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var script []models.ScriptScene
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script %s: %w", path, err)
	}
	return script, nil
}
