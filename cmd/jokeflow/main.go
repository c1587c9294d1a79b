// Command jokeflow runs the interactive joke bot, either against the
// bundled joke dataset or through an LLM writer/critic loop.
package main

func main() {
	Execute()
}
