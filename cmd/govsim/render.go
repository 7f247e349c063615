// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	okColor    = color.New(color.FgGreen)
	failColor  = color.New(color.FgRed)
	pendColor  = color.New(color.FgYellow)
	titleColor = color.New(color.Bold)
)

// stateColor picks a colour for a lifecycle state name.
func stateColor(state string) *color.Color {
	switch state {
	case "Succeeded", "Executed", "Ready", "Done":
		return okColor
	case "Defeated", "Canceled", "Expired":
		return failColor
	default:
		return pendColor
	}
}

func printState(w io.Writer, label, state string) {
	fmt.Fprintf(w, "  %-22s %s\n", label, stateColor(state).Sprint(state))
}

func printOK(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", okColor.Sprint("✓"), fmt.Sprintf(format, args...))
}

func printFail(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", failColor.Sprint("✗"), fmt.Sprintf(format, args...))
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", titleColor.Sprintf("【%s】", title))
}
