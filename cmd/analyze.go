package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/AriadneD/musicemotions/emotion"
	"github.com/AriadneD/musicemotions/emotion/config"
	"github.com/AriadneD/musicemotions/transcode"
)

var (
	analyzeSnippetSeconds int
	analyzeOutFile        string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [wav-file]",
	Short: "Compute the emotional signature of a WAV file",
	Long: `Decode a WAV file, analyze up to the configured snippet length from
its start, and emit the per-second axis time series plus the average
profile.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().IntVarP(&analyzeSnippetSeconds, "snippet-seconds", "s", 45,
		"seconds of audio to analyze from the start of the track")
	analyzeCmd.Flags().StringVar(&analyzeOutFile, "out", "",
		"write output to a file instead of stdout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	audioData, err := transcode.LoadWAVFile(path)
	if err != nil {
		return fmt.Errorf("load audio: %w", err)
	}

	cfg := config.DefaultAnalysisConfig()
	cfg.SnippetSeconds = viper.GetInt("snippet_seconds")
	if cmd.Flags().Changed("snippet-seconds") {
		cfg.SnippetSeconds = analyzeSnippetSeconds
	}

	analyzer := emotion.NewAnalyzer(cfg)

	result, err := analyzer.Analyze(audioData.PCM, audioData.SampleRate)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", path, err)
	}

	out := io.Writer(os.Stdout)
	if analyzeOutFile != "" {
		file, err := os.Create(analyzeOutFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	format := viper.GetString("output_format")
	switch format {
	case "json":
		return writeJSON(out, result)
	case "csv":
		return writeCSV(out, result)
	case "yaml":
		return writeYAML(out, result)
	default:
		return fmt.Errorf("unknown output format %q (want json, csv, or yaml)", format)
	}
}

// output is the serialized shape shared by the JSON and YAML writers
type output struct {
	TimeSeries emotion.AxisTimeSeries `json:"time_series" yaml:"time_series"`
	Profile    emotion.AverageProfile `json:"average_profile" yaml:"average_profile"`
	TotalSec   int                    `json:"total_sec" yaml:"total_sec"`
	SampleRate int                    `json:"sample_rate" yaml:"sample_rate"`
}

func writeJSON(w io.Writer, result *emotion.AnalysisResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output{
		TimeSeries: result.TimeSeries,
		Profile:    result.Profile,
		TotalSec:   result.TotalSec,
		SampleRate: result.SampleRate,
	})
}

func writeYAML(w io.Writer, result *emotion.AnalysisResult) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	return encoder.Encode(output{
		TimeSeries: result.TimeSeries,
		Profile:    result.Profile,
		TotalSec:   result.TotalSec,
		SampleRate: result.SampleRate,
	})
}

// writeCSV emits one row per analyzed second, matching the annotation
// layout presentation layers consume
func writeCSV(w io.Writer, result *emotion.AnalysisResult) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"time_sec", "valence", "energy", "tension", "warmth", "power", "complexity"}
	if err := writer.Write(header); err != nil {
		return err
	}

	formatVal := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 6, 64)
	}

	for _, row := range result.TimeSeries {
		record := []string{
			strconv.Itoa(row.TimeSec),
			formatVal(row.Valence),
			formatVal(row.Energy),
			formatVal(row.Tension),
			formatVal(row.Warmth),
			formatVal(row.Power),
			formatVal(row.Complexity),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}
