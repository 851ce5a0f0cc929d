// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tui renders an interactive ballot in the terminal.

Each round shows the session's current choices in a list. Enter submits the
highlighted choice; esc, q or ctrl+c abandon the ballot without recording it.

	session := election.BeginSession(voterKey)
	if err := tui.Run(session, "board", os.Stdin, os.Stdout); err != nil {
		return err
	}
	if !session.Done() {
		// abandoned
	}
*/
package tui
