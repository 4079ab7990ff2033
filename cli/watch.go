package main

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const watchMinInterval = 200 * time.Millisecond

// watch calls dump once, then again after every change to path until stop
// is closed or the watcher fails.
func (c *Context) watch(path string, dump func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create watcher")
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		return errors.Wrapf(err, "failed to watch %s", path)
	}

	for {
		startTime := time.Now()
		if c.clearScreen != nil {
			c.clearScreen()
		}
		if err := dump(); err != nil {
			return err
		}

		if err := c.waitForChange(w, path); err != nil {
			return err
		}
		if c.stopped() {
			return nil
		}

		/* Editors often write a file in several steps, give them time to finish */
		d := time.Since(startTime)
		if d < watchMinInterval {
			time.Sleep(watchMinInterval - d)
		}
		drainEvents(w)
	}
}

func (c *Context) stopped() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

func (c *Context) waitForChange(w *fsnotify.Watcher, path string) error {
	for {
		select {
		case <-c.stop:
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("watcher closed")
			}
			c.log(3, "Watch event: %s", ev)

			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				/* Replaced by a new file, the old watch is gone */
				time.Sleep(watchMinInterval)
				if err := w.Add(path); err != nil {
					return errors.Wrapf(err, "failed to watch %s", path)
				}
				return nil
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				return nil
			}

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("watcher closed")
			}
			return errors.Wrap(err, "watch failed")
		}
	}
}

func drainEvents(w *fsnotify.Watcher) {
	for {
		select {
		case <-w.Events:
		default:
			return
		}
	}
}
