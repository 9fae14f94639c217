package handlers

import (
	"strconv"
	"strings"
)

// Canned dialogue lines. The menu is fixed; menu management is out of scope.
const (
	replyFlavorMenu = "How about our delicious flavors? You can choose between strawberry, vanilla and chocolate. Which flavors would you like?"

	replyMismatch        = "Sorry, dear customer: the number of scoops and flavors does not match!"
	replyMismatchRestart = "Could you please start again and tell me the number of scoops you want?"

	replyGoodbye = "See you soon! Bye bye!"
)

// spokenScoops renders "one scoop" / "3 scoops" the way a human would say it.
func spokenScoops(n int) string {
	if n == 1 {
		return "one scoop"
	}
	return strconv.Itoa(n) + " scoops"
}

func spokenFlavors(flavors []string) string {
	return strings.Join(flavors, ", ")
}
