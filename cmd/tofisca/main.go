// Command tofisca runs film frame registration from the command line:
// detect a frame in a single scanner image, track frames across an image
// sequence, render synthetic test film, and list the known film formats.
package main

func main() {
	Execute()
}
