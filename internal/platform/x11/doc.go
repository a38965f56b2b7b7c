// Package x11 implements the platform interfaces on an X11 session with
// an EWMH window manager, using xgbutil.
//
// New windows are detected by watching _NET_CLIENT_LIST on the root window.
// Applications are resolved the way the shell's window tracker does it: the
// _GTK_APPLICATION_ID and WM_CLASS hints are matched against installed
// desktop entries.
package x11
