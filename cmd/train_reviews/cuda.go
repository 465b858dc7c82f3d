//go:build cuda

package main

import _ "github.com/avgm/reviewscore/device/cu"
