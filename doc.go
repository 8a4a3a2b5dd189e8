/*
Package speedicon generates the multi-resolution application icon of a network speed meter.

Two generators are provided. The Drawer renders a speedometer gauge procedurally at any size,
while the Converter rasterizes an existing SVG (or raster) image. Both collect the rendered
images in a Bundle, which is exported as a single ICO file.

The package ships with two command line tools. To check the supported flags type:

	$ drawicon --help
	$ svg2ico --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"log"

		"github.com/speedometer/speedicon"
	)

	func main() {
		d := speedicon.NewDrawer()

		b, err := d.DrawAll(speedicon.DefaultSizes)
		if err != nil {
			log.Fatalf("Error drawing the icon: %v", err)
		}
		if err := b.WriteFile("app.ico"); err != nil {
			log.Fatalf("Error saving the icon: %v", err)
		}
	}
*/
package speedicon
