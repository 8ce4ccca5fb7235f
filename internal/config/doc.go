// Package config loads toaster configuration files.
//
// The configuration is stored in toaster.json, toaster.yaml or toaster.yml
// and describes a toaster container plus the preview server:
//
//	position: top-center
//	visibleToasts: 5
//	duration: 6s
//	closeButton: true
//	theme: system
//	icons: ./icons.json
//	classNames:
//	  toast: my-toast
//	  category:
//	    error: my-error
//	serve:
//	  port: 3000
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	tc, err := cfg.Toaster(logger)
package config
