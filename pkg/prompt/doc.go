// Package prompt runs the QR form in a terminal. A PromptDriver asks the
// questions (survey by default) and a Session feeds every answer to the
// orchestrator, then offers the download and copy actions.
package prompt
