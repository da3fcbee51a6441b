package frameloop

import "io"

// startByteReader spawns the sole goroutine that reads from r, delivering
// each byte read over the returned channel. This isolates all reading
// from the underlying descriptor in one goroutine so the frame loop's
// non-blocking drain never races with it — the same one-reader-goroutine
// shape a channel-fed terminal input loop always needs.
func startByteReader(r io.Reader) <-chan byte {
	ch := make(chan byte, 4096)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				ch <- buf[0]
			}
			if err != nil {
				close(ch)
				return
			}
		}
	}()
	return ch
}
