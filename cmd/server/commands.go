package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"agribot/internal/model"
	"agribot/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample Burkina Faso knowledge base into an empty store",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import crops, soils, diseases, pests and fertilizers from a JSON bundle",
	Long: `Upserts every record of the bundle. Crops keep their id but their
planting periods are replaced. Records that fail are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [file.json]",
	Short: "Write the whole knowledge store as a JSON bundle",
	Long: `Writes a bundle that the import command accepts. Without a file
argument the bundle is printed to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask one question against the local knowledge store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().Bool("json", false, "print the full response as JSON")
	rootCmd.AddCommand(seedCmd, importCmd, exportCmd, askCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	seeded, err := a.repo.Seed(cmd.Context())
	if err != nil {
		return err
	}
	if !seeded {
		fmt.Fprintln(cmd.OutOrStdout(), "Knowledge store already holds crops, nothing to do.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Sample knowledge base loaded.")
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var bundle model.KnowledgeBundle
	if err := utils.ParseLenientJSON(string(data), &bundle); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.repo.Import(cmd.Context(), &bundle)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d crops (%d periods), %d soils, %d diseases, %d pests, %d fertilizers, %d links.\n",
		result.Crops, result.Periods, result.Soils, result.Diseases, result.Pests, result.Fertilizers, result.Links)
	if err != nil {
		a.logger.Warn("import finished with errors", zap.Error(err))
		return err
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	bundle, err := a.repo.Export(cmd.Context())
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bundle: %w", err)
	}
	data = append(data, '\n')

	if len(args) == 0 {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d crops, %d soils, %d diseases, %d pests, %d fertilizers to %s.\n",
		len(bundle.Crops), len(bundle.Soils), len(bundle.Diseases), len(bundle.Pests), len(bundle.Fertilizers), args[0])
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	chat, _, err := a.chatService()
	if err != nil {
		return err
	}

	resp, err := chat.HandleMessage(cmd.Context(), "cli", strings.Join(args, " "))
	if err != nil {
		return err
	}
	if resp == nil {
		return fmt.Errorf("empty question")
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, plainText(resp.BotResponse))
	fmt.Fprintf(out, "\n(%s, confiance %.1f%%)\n", resp.Source, resp.ConfidencePercent)
	for _, s := range resp.Suggestions {
		fmt.Fprintf(out, "  ? %s\n", s)
	}
	return nil
}

// plainText turns a formatted reply back into terminal text
func plainText(html string) string {
	return strings.NewReplacer("<br>", "\n", "<strong>", "", "</strong>", "").Replace(html)
}
