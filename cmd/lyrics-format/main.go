package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/minhle/karascribe/internal/lyrics"
	"github.com/minhle/karascribe/internal/transcription"
)

func main() {
	var (
		outputFile string
		showWords  bool
	)
	config := lyrics.DefaultConfig()

	flag.StringVar(&outputFile, "output", "", "Output file name (default: stdout)")
	flag.BoolVar(&showWords, "words", false, "Print the word timeline after the lyrics")
	flag.IntVar(&config.Format.MaxCharsPerLine, "max-chars", config.Format.MaxCharsPerLine, "Soft character budget per line")
	flag.Float64Var(&config.Format.LineGapThreshold, "line-gap", config.Format.LineGapThreshold, "Silence in seconds that starts a new line")
	flag.Float64Var(&config.Format.StanzaGapThreshold, "stanza-gap", config.Format.StanzaGapThreshold, "Silence in seconds that starts a new stanza")
	flag.BoolVar(&config.Format.UppercaseBreak, "upper-break", config.Format.UppercaseBreak, "Break before capitalized words on long lines")
	flag.BoolVar(&config.Dedupe, "dedupe", config.Dedupe, "Cap consecutive identical lines")
	flag.IntVar(&config.MaxConsecutiveRepeats, "max-repeats", config.MaxConsecutiveRepeats, "Repeat cap for identical lines")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <transcription.json>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	resp, err := transcription.ParseFile(args[0])
	if err != nil {
		log.Fatalf("Error reading transcription: %v", err)
	}

	service := lyrics.NewService(config, nil)
	result := service.FormatTranscription(resp, showWords)

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(result.Lyrics+"\n"), 0644); err != nil {
			log.Fatalf("Error saving file: %v", err)
		}
		fmt.Printf("Lyrics saved to: %s (language: %s)\n", outputFile, result.LanguageDetected)
	} else {
		fmt.Println(result.Lyrics)
		fmt.Fprintf(os.Stderr, "\nlanguage: %s\n", result.LanguageDetected)
	}

	if showWords {
		printWords(result.Words)
	}
}

func printWords(words []transcription.Word) {
	for _, w := range words {
		fmt.Fprintf(os.Stderr, "%7.2f %7.2f  %s\n", w.Start, w.End, w.Word)
	}
}
