package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/viromics/biometa/internal/config"
	"github.com/viromics/biometa/pkg/bioinfo"
)

// os
var (
	ex, _  = os.Executable()
	exPath = filepath.Dir(ex)
)

var (
	labMetadata = flag.String(
		"json",
		"",
		"lab metadata json created by read-lab-metadata",
	)
	inputFolder = flag.String(
		"input",
		"",
		"input folder with the analysis results",
	)
	outputFolder = flag.String(
		"output",
		"",
		"output folder",
	)
	cfgFile = flag.String(
		"config",
		filepath.Join(exPath, "etc", "bioinfo_config.json"),
		"field mapping configuration",
	)
	dotFile = flag.String(
		"graph",
		"",
		"write the stage graph to this dot file",
	)
)

func main() {
	flag.Parse()
	if *labMetadata == "" || *inputFolder == "" || *outputFolder == "" {
		flag.Usage()
		log.Fatal("-json, -input and -output required")
	}

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatal(err)
	}

	var opts []bioinfo.Option
	if *dotFile != "" {
		opts = append(opts, bioinfo.WithDrawer(*dotFile))
	}

	merger, err := bioinfo.New(*labMetadata, *inputFolder, *outputFolder, cfg, opts...)
	if err != nil {
		log.Fatal(err)
	}

	err = merger.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}
