/*
geomtool derives per-vertex attributes (smooth normals, tangents) and
bounding volumes for Wavefront OBJ meshes, printing a summary of the result.
With -watch it keeps running and re-derives whenever the file changes.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/geometry-tools/assets"
	"github.com/spaghettifunk/geometry-tools/core"
	"github.com/spaghettifunk/geometry-tools/geometry"
	"github.com/spaghettifunk/geometry-tools/loaders"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	watch := flag.Bool("watch", false, "keep running and re-derive on file changes")
	normals := flag.Bool("normals", true, "recompute smooth per-vertex normals")
	tangents := flag.Bool("tangents", true, "derive packed tangents (requires UVs)")
	dedupe := flag.Bool("dedupe", true, "weld duplicate vertices before deriving")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] mesh.obj\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	meshPath := flag.Arg(0)

	cfg := DefaultConfig()
	if *configPath != "" {
		loaded, err := LoadConfig(*configPath)
		if err != nil {
			core.LogFatal("loading config %s: %v", *configPath, err)
		}
		cfg = loaded
	}
	// Explicitly passed flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "normals":
			cfg.SmoothNormals = *normals
		case "tangents":
			cfg.Tangents = *tangents
		case "dedupe":
			cfg.Dedupe = *dedupe
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	core.SetLogLevel(cfg.LogLevel)

	if err := process(meshPath, cfg); err != nil {
		core.LogFatal("%v", err)
	}

	if !*watch {
		return
	}

	watcher, err := assets.NewWatcher()
	if err != nil {
		core.LogFatal("creating watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.Add(meshPath); err != nil {
		core.LogFatal("watching %s: %v", meshPath, err)
	}

	go watcher.Start(func(path string) {
		if err := process(path, cfg); err != nil {
			core.LogError("%v", err)
		}
	})

	core.LogInfo("watching %s, press ctrl-c to stop", meshPath)

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-sigCh
}

func process(path string, cfg Config) error {
	loader := &loaders.ObjLoader{}
	mesh, err := loader.Load(path)
	if err != nil {
		return err
	}

	if cfg.Dedupe {
		before := len(mesh.Positions)
		mesh.DeduplicateVertices()
		core.LogInfo("%s: welded %d of %d vertices", mesh.Name, before-len(mesh.Positions), before)
	}

	err = mesh.DeriveAttributes(geometry.DeriveOptions{
		SmoothNormals: cfg.SmoothNormals || len(mesh.Normals) == 0,
		Tangents:      cfg.Tangents && len(mesh.UVs) > 0,
		Goroutines:    cfg.Goroutines,
	})
	if err != nil {
		return fmt.Errorf("deriving attributes for %s: %w", mesh.Name, err)
	}

	core.LogInfo("%s: %d vertices, %d triangles", mesh.Name, len(mesh.Positions), len(mesh.Indices)/3)
	core.LogInfo("%s: extents min=%+v max=%+v", mesh.Name, mesh.Extents.Min, mesh.Extents.Max)
	core.LogInfo("%s: bounding sphere center=%+v radius=%.4f", mesh.Name, mesh.Sphere.Center, mesh.Sphere.Radius)
	if len(mesh.Tangents) > 0 {
		core.LogInfo("%s: %d packed tangents derived", mesh.Name, len(mesh.Tangents))
	}
	return nil
}
