// Command watson calls the Watson services from the shell. Credentials are
// read from ibm-credentials.env and the environment, for example
// SPEECH_TO_TEXT_APIKEY or TEXT_TO_SPEECH_USERNAME and TEXT_TO_SPEECH_PASSWORD.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
