package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ottoh/crazyeights"
	"github.com/ottoh/crazyeights/deck"
	"github.com/ottoh/crazyeights/protocol"
)

const computerID = "computer"

func main() {
	name := "Player"
	if len(os.Args) > 1 {
		name = os.Args[1]
	}
	playerID := crazyeights.NewID()

	game := crazyeights.NewGame(crazyeights.DefaultRuleset(), []protocol.PlayerInfo{
		{PlayerID: playerID, Name: name},
		{PlayerID: computerID, Name: crazyeights.ComputerName, IsComputer: true},
	})
	if err := game.Start(); err != nil {
		log.Fatalf("could not start game: %s", err)
	}

	scanner := bufio.NewScanner(os.Stdin)

	for !game.GameOver() {
		current, _ := game.CurrentPlayer()

		if current.IsComputer {
			applyComputerMove(game)
			fmt.Println(game.Message())
			continue
		}

		printView(game, playerID)
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		if err := runCommand(game, playerID, scanner.Text()); err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(game.Message())
	}

	fmt.Println(game.Message())
}

func applyComputerMove(game *crazyeights.Game) {
	action := crazyeights.DecideMove(game, computerID)
	var err error
	switch action.Type {
	case crazyeights.ActionPlay:
		err = game.PlayCard(computerID, *action.Card, action.ChosenSuit)
	case crazyeights.ActionDraw:
		_, err = game.DrawCard(computerID)
	case crazyeights.ActionPass:
		err = game.PassTurn(computerID)
	}
	if err != nil {
		log.Fatalf("computer move failed: %s", err)
	}
}

func printView(game *crazyeights.Game, playerID string) {
	view, err := game.StateForPlayer(playerID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println()
	fmt.Println(view.Message)
	if view.TopCard != nil {
		fmt.Printf("Top card: %s (current suit %s)\n", view.TopCard, view.CurrentSuit)
	}
	for _, o := range view.Opponents {
		fmt.Printf("%s holds %d cards\n", o.Name, o.HandSize)
	}
	fmt.Println("Your hand:")
	for _, c := range view.MyHand {
		fmt.Printf("  %s\n", c)
	}
	fmt.Println(`Commands: "play <rank> <suit> [chosen suit]", "draw", "pass"`)
}

func runCommand(game *crazyeights.Game, playerID, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return errors.New("enter a command")
	}

	switch fields[0] {
	case "play":
		if len(fields) < 3 {
			return errors.New(`usage: play <rank> <suit> [chosen suit]`)
		}
		card, err := deck.ParseCard(fields[2], fields[1])
		if err != nil {
			return err
		}
		var chosenSuit *deck.Suit
		if len(fields) > 3 {
			suit, err := deck.ParseSuit(fields[3])
			if err != nil {
				return err
			}
			chosenSuit = &suit
		}
		return game.PlayCard(playerID, card, chosenSuit)

	case "draw":
		drawn, err := game.DrawCard(playerID)
		if err == nil && len(drawn) > 0 {
			fmt.Printf("You drew: %s\n", drawn[0])
		}
		return err

	case "pass":
		return game.PassTurn(playerID)

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}
