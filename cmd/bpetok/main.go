package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/corebpe/corebpe"
)

func die(err error) { fmt.Fprintln(os.Stderr, err); os.Exit(1) }

func loadTokenizer(preset, vocabPath string) (*corebpe.Tokenizer, error) {
	def, ok := corebpe.Presets[preset]
	if !ok {
		return nil, corebpe.ErrUnknownPreset
	}
	vocab, err := corebpe.LoadVocabFile(vocabPath)
	if err != nil {
		return nil, err
	}
	return corebpe.New(vocab, def.SpecialTokens, def.PatStr)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("bpetok [encode|decode]")
		return
	}
	switch os.Args[1] {
	case "encode":
		fs := flag.NewFlagSet("encode", flag.ExitOnError)
		preset := fs.String("preset", corebpe.PresetCL100kBase, "encoding preset")
		vocabPath := fs.String("vocab", "", "path to a tiktoken-format vocabulary file")
		ordinary := fs.Bool("ordinary", false, "disable special-token recognition")
		_ = fs.Parse(os.Args[2:])

		tok, err := loadTokenizer(*preset, *vocabPath)
		if err != nil {
			die(err)
		}
		text, err := readStdin()
		if err != nil {
			die(err)
		}

		var toks []corebpe.Rank
		if *ordinary {
			toks = tok.EncodeOrdinary(text)
		} else {
			toks = tok.EncodeWithSpecialTokens(text)
		}
		_ = json.NewEncoder(os.Stdout).Encode(toks)
	case "decode":
		fs := flag.NewFlagSet("decode", flag.ExitOnError)
		preset := fs.String("preset", corebpe.PresetCL100kBase, "encoding preset")
		vocabPath := fs.String("vocab", "", "path to a tiktoken-format vocabulary file")
		_ = fs.Parse(os.Args[2:])

		tok, err := loadTokenizer(*preset, *vocabPath)
		if err != nil {
			die(err)
		}
		var toks []corebpe.Rank
		if err := json.NewDecoder(os.Stdin).Decode(&toks); err != nil {
			die(err)
		}
		os.Stdout.Write(tok.DecodeBytes(toks))
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		os.Exit(1)
	}
}

func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
