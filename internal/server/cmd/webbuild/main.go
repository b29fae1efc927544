// Command webbuild bundles web/src/main.ts into the embedded web/client.js.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
)

func main() {
	minify := flag.Bool("minify", false, "minify the bundle and drop the inline source map")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("getwd: %v", err)
	}

	opts := api.BuildOptions{
		EntryPoints:   []string{filepath.Join(wd, "web", "src", "main.ts")},
		Outfile:       filepath.Join(wd, "web", "client.js"),
		AbsWorkingDir: wd,
		Bundle:        true,
		Format:        api.FormatIIFE,
		Target:        api.ES2018,
		Platform:      api.PlatformBrowser,
		LogLevel:      api.LogLevelInfo,
		Sourcemap:     api.SourceMapInline,
		Write:         true,
		Loader: map[string]api.Loader{
			".ts": api.LoaderTS,
		},
	}
	if *minify {
		opts.MinifyWhitespace = true
		opts.MinifyIdentifiers = true
		opts.MinifySyntax = true
		opts.Sourcemap = api.SourceMapNone
	}

	result := api.Build(opts)
	for _, message := range result.Warnings {
		log.Printf("esbuild warning: %s", message.Text)
	}
	if len(result.Errors) > 0 {
		for _, message := range result.Errors {
			log.Printf("esbuild error: %s", message.Text)
		}
		log.Fatalf("esbuild failed with %d error(s)", len(result.Errors))
	}
}
