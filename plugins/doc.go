// Package plugins hosts optional rule plugins installed through
// core.Service.InstallPlugin. It contains no runtime code itself.
package plugins
