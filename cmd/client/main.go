package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/tactics-and-toes/internal/adapters/webapi"
	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/kiryu-dev/tactics-and-toes/pkg/utils"
	"github.com/pkg/errors"
)

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	key := flag.String("key", uuid.NewString(), "client key, reuse it to continue a game")
	flag.Parse()

	scanner := bufio.NewScanner(os.Stdin)
	repo := webapi.New()
	variants, err := repo.Variants(context.Background(), "http://"+*addr)
	if err != nil {
		log.Fatal(err)
	}
	variant, mode, err := chooseGame(scanner, variants)
	if err != nil {
		log.Fatal(err)
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/game"}
	header := http.Header{}
	header.Set(domain.ClientUuidHeader, *key)
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatal("dial: " + err.Error())
	}
	defer func() {
		_ = conn.Close()
	}()
	c := newClient(conn, scanner)
	if err := c.write(domain.Message{
		Type:    domain.NewGame,
		Payload: domain.NewGamePayload{Variant: variant, Mode: mode},
	}); err != nil {
		log.Fatal(err)
	}
	go c.handleMessages()
	if err := c.handleInput(); err != nil {
		log.Fatal(err)
	}
}

func chooseGame(scanner *bufio.Scanner, variants []domain.VariantInfo) (string, domain.Mode, error) {
	for i, v := range variants {
		fmt.Printf("%d. %s: %s\n", i+1, v.Name, v.Description)
	}
	fmt.Print("Variant: ")
	i, err := readNumber(scanner, len(variants))
	if err != nil {
		return "", 0, errors.WithMessage(err, "choose variant")
	}
	fmt.Print("1. Play vs Player\n2. Play vs AI\nMode: ")
	m, err := readNumber(scanner, 2)
	if err != nil {
		return "", 0, errors.WithMessage(err, "choose mode")
	}
	mode := domain.PlayerVsPlayer
	if m == 2 {
		mode = domain.PlayerVsAutomated
	}
	return variants[i-1].Slug, mode, nil
}

func readNumber(scanner *bufio.Scanner, upper int) (int, error) {
	if ok := scanner.Scan(); !ok {
		return 0, scanner.Err()
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return 0, err
	}
	if n < 1 || n > upper {
		return 0, errors.Errorf("number must be between 1 and %d", upper)
	}
	return n, nil
}

type client struct {
	conn    *websocket.Conn
	scanner *bufio.Scanner
}

func newClient(conn *websocket.Conn, scanner *bufio.Scanner) *client {
	return &client{
		conn:    conn,
		scanner: scanner,
	}
}

func (c *client) write(msg domain.Message) error {
	if err := c.conn.WriteJSON(msg); err != nil {
		return errors.WithMessage(err, "write json msg")
	}
	return nil
}

func (c *client) handleInput() error {
	for c.scanner.Scan() {
		msg, ok := parseCommand(strings.TrimSpace(c.scanner.Text()))
		if !ok {
			if strings.TrimSpace(c.scanner.Text()) == "q" {
				return nil
			}
			fmt.Println("commands: 1-9 move, x/o pick mark, r reset, m switch mode, q quit")
			continue
		}
		if err := c.write(msg); err != nil {
			return err
		}
	}
	return c.scanner.Err()
}

func parseCommand(text string) (domain.Message, bool) {
	switch text {
	case "x":
		return domain.Message{Type: domain.SelectMark, Payload: domain.SelectMarkPayload{Player: domain.First}}, true
	case "o":
		return domain.Message{Type: domain.SelectMark, Payload: domain.SelectMarkPayload{Player: domain.Second}}, true
	case "r":
		return domain.Message{Type: domain.ResetGame}, true
	case "m":
		return domain.Message{Type: domain.SwitchMode}, true
	}
	pos, err := strconv.Atoi(text)
	if err != nil || pos < 1 || pos > domain.BoardSize {
		return domain.Message{}, false
	}
	return domain.Message{Type: domain.MakeMove, Payload: domain.MovePayload{Position: pos - 1}}, true
}

func (c *client) handleMessages() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Println("read msg: " + err.Error())
			os.Exit(1)
		}
		var msg domain.Message
		if err := jsoniter.Unmarshal(data, &msg); err != nil {
			log.Println("unmarshal msg: " + err.Error())
			continue
		}
		switch msg.Type {
		case domain.StateUpdate:
			v, err := utils.UnmarshalJson[domain.StatePayload](msg.Payload)
			if err != nil {
				log.Println(err)
				continue
			}
			printState(v)
		case domain.Rejected:
			v, err := utils.UnmarshalJson[domain.RejectedPayload](msg.Payload)
			if err != nil {
				log.Println(err)
				continue
			}
			fmt.Printf("Rejected (%s): %s\n", v.Reason, v.Detail)
		}
	}
}

func printState(p domain.StatePayload) {
	state := p.State
	fmt.Printf("\033[H\033[J")
	fmt.Printf("%s, version %d\n\n", state.Variant, state.Version)
	for i, cell := range state.Board {
		symbol := cellSymbol(cell, i)
		if (i+1)%3 == 0 {
			fmt.Printf("%s ", symbol)
			if i < 6 {
				fmt.Printf("\n——|———|——\n")
			}
		} else {
			fmt.Printf("%s | ", symbol)
		}
	}
	fmt.Print("\n\n")
	switch p.Phase {
	case domain.AwaitingMarkSelection:
		fmt.Println("Pick your mark: x or o")
	case domain.OpponentTurn:
		fmt.Println("Opponent is thinking...")
	case domain.HumanTurn:
		fmt.Printf("%s to move\n", playerName(state.Turn.Current))
		if oldest, ok := state.History.Of(state.Turn.Current).Oldest(); ok && state.Variant == domain.Poof &&
			state.History.Of(state.Turn.Current).Full() {
			fmt.Printf("Cell %d disappears on your next move\n", oldest+1)
		}
	case domain.Terminal:
		if state.Outcome.Status == domain.Draw {
			fmt.Println("Draw! r to play again")
		} else {
			fmt.Printf("%s wins! r to play again\n", playerName(state.Outcome.Winner))
		}
	}
}

func cellSymbol(cell domain.Cell, index int) string {
	switch {
	case cell.Kind == domain.Full:
		return playerName(cell.Owner)
	case cell.IsLiveHalf():
		return "/"
	case cell.IsSpentHalf():
		return "\\"
	default:
		return strconv.Itoa(index + 1)
	}
}

func playerName(p domain.Player) string {
	if p == domain.Second {
		return "O"
	}
	return "X"
}
