package files

var crossDeviceErr error = errNotSameDevice
