// Copyright (c) 2012 by Christoph Hack <christoph@tux21b.org>
// All rights reserved. Distributed under the Simplified BSD License.

// Command jetanrandombot demonstrates driving the Jetan HTTP API from an
// external client: it creates a game, then repeatedly queries /legal to
// pick random legal moves for the side to move, until none remain.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

var base = flag.String("base", "http://127.0.0.1:8080", "base URL of a running jetanserver")

type square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type piece struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Color  string `json:"color"`
	Square square `json:"square"`
}

type stateView struct {
	Pieces []piece `json:"pieces"`
	ToMove string  `json:"toMove"`
	Result string  `json:"result"`
}

type snapshotResponse struct {
	GameID  string    `json:"gameId"`
	Version int       `json:"version"`
	State   stateView `json:"state"`
}

type legalResponse struct {
	Destination []square `json:"destinations"`
}

type candidateMove struct {
	From square `json:"from"`
	To   square `json:"to"`
}

func createGame() (string, int, error) {
	resp, err := http.Post(*base+"/api/v1/games", "application/json", bytes.NewBufferString(`{"variant":"standard"}`))
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	var snap snapshotResponse
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return "", 0, err
	}
	return snap.GameID, snap.Version, nil
}

func getSnapshot(gameID string) (snapshotResponse, error) {
	resp, err := http.Get(*base + "/api/v1/games/" + gameID)
	if err != nil {
		return snapshotResponse{}, err
	}
	defer resp.Body.Close()

	var snap snapshotResponse
	err = json.NewDecoder(resp.Body).Decode(&snap)
	return snap, err
}

func legalDestinations(gameID string, sq square) ([]square, error) {
	url := fmt.Sprintf("%s/api/v1/games/%s/legal?row=%d&col=%d", *base, gameID, sq.Row, sq.Col)
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var legal legalResponse
	if err := json.NewDecoder(resp.Body).Decode(&legal); err != nil {
		return nil, err
	}
	return legal.Destination, nil
}

func applyMove(gameID string, version int, mv candidateMove) (int, error) {
	body, err := json.Marshal(struct {
		Action string `json:"action"`
		From   square `json:"from"`
		To     square `json:"to"`
	}{Action: "move", From: mv.From, To: mv.To})
	if err != nil {
		return version, err
	}

	req, err := http.NewRequest(http.MethodPost, *base+"/api/v1/games/"+gameID+"/moves", bytes.NewReader(body))
	if err != nil {
		return version, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("If-Match", strconv.Itoa(version))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return version, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return version, nil
	}

	var result struct {
		Version int `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return version, err
	}
	return result.Version, nil
}

func main() {
	flag.Parse()

	gameID, version, err := createGame()
	if err != nil {
		fmt.Println("createGame:", err)
		return
	}
	fmt.Println("Created game:", gameID, "version:", version)

	for {
		snap, err := getSnapshot(gameID)
		if err != nil {
			fmt.Println("getSnapshot:", err)
			return
		}
		version = snap.Version
		if snap.State.Result != "" {
			fmt.Println("Game finished:", snap.State.Result)
			return
		}

		var moves []candidateMove
		for _, p := range snap.State.Pieces {
			if p.Color != snap.State.ToMove {
				continue
			}
			dests, err := legalDestinations(gameID, p.Square)
			if err != nil {
				fmt.Println("legalDestinations:", err)
				return
			}
			for _, d := range dests {
				moves = append(moves, candidateMove{From: p.Square, To: d})
			}
		}
		if len(moves) == 0 {
			fmt.Println("No legal moves. Stopping.")
			return
		}

		choice := moves[rand.Intn(len(moves))]
		version, err = applyMove(gameID, version, choice)
		if err != nil {
			fmt.Println("applyMove:", err)
			return
		}
		fmt.Printf("Move %+v -> ver %d\n", choice, version)
		time.Sleep(500 * time.Millisecond)
	}
}
