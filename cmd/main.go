package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	gldevice "github.com/richinsley/glpyramid/gldevice"
	glfwcontext "github.com/richinsley/glpyramid/glfwcontext"
	options "github.com/richinsley/glpyramid/options"
	renderer "github.com/richinsley/glpyramid/renderer"
	shader "github.com/richinsley/glpyramid/shader"
	translator "github.com/richinsley/glpyramid/translator"
)

func init() {
	runtime.LockOSThread()
}

// run opens the window, draws until it is closed and returns the process
// exit status. Deferred cleanup runs before the caller exits.
func run(opts *options.Options) int {
	if err := glfwcontext.InitGraphics(); err != nil {
		log.Printf("Failed to initialize GLFW: %v", err)
		return -1
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts)
	if err != nil {
		log.Printf("Failed to create window: %v", err)
		return -1
	}
	defer ctx.Shutdown()

	ctx.MakeCurrent()
	dev, err := gldevice.Load()
	if err != nil {
		log.Printf("Failed to load OpenGL: %v", err)
		return -1
	}

	var tr shader.Translator
	if opts.TranslateShaders() {
		t, err := translator.Get()
		if err != nil {
			log.Printf("Failed to start shader translator: %v", err)
			return -1
		}
		tr = t
	}

	r, err := renderer.NewRenderer(ctx, dev, opts, tr)
	if err != nil {
		log.Printf("Failed to create renderer: %v", err)
		return -1
	}
	defer r.Shutdown()

	log.Println("Starting render loop...")
	r.Run()
	return 0
}

func main() {
	opts, err := options.FromFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Error parsing flags: %v", err)
	}

	if *opts.Help {
		fmt.Println("Pyramid viewer")
		flag.PrintDefaults()
		return
	}

	os.Exit(run(opts))
}
