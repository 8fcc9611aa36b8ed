// Copyright (c) 2026 Agrio India. All rights reserved.

package auth

// statesByPostalPrefix maps the first two digits of an Indian PIN code to the
// state (or union territory) that postal zone belongs to. The mapping is
// coarse: a handful of prefixes straddle state borders, in which case the
// dominant state wins. District resolution needs a full directory and is left
// to the user-supplied value.
var statesByPostalPrefix = map[string]string{
	"11": "Delhi",
	"12": "Haryana",
	"13": "Haryana",
	"14": "Punjab",
	"15": "Punjab",
	"16": "Punjab",
	"17": "Himachal Pradesh",
	"18": "Jammu and Kashmir",
	"19": "Jammu and Kashmir",
	"20": "Uttar Pradesh",
	"21": "Uttar Pradesh",
	"22": "Uttar Pradesh",
	"23": "Uttar Pradesh",
	"24": "Uttarakhand",
	"25": "Uttar Pradesh",
	"26": "Uttar Pradesh",
	"27": "Uttar Pradesh",
	"28": "Uttar Pradesh",
	"30": "Rajasthan",
	"31": "Rajasthan",
	"32": "Rajasthan",
	"33": "Rajasthan",
	"34": "Rajasthan",
	"36": "Gujarat",
	"37": "Gujarat",
	"38": "Gujarat",
	"39": "Gujarat",
	"40": "Maharashtra",
	"41": "Maharashtra",
	"42": "Maharashtra",
	"43": "Maharashtra",
	"44": "Maharashtra",
	"45": "Madhya Pradesh",
	"46": "Madhya Pradesh",
	"47": "Madhya Pradesh",
	"48": "Madhya Pradesh",
	"49": "Chhattisgarh",
	"50": "Telangana",
	"51": "Andhra Pradesh",
	"52": "Andhra Pradesh",
	"53": "Andhra Pradesh",
	"56": "Karnataka",
	"57": "Karnataka",
	"58": "Karnataka",
	"59": "Karnataka",
	"60": "Tamil Nadu",
	"61": "Tamil Nadu",
	"62": "Tamil Nadu",
	"63": "Tamil Nadu",
	"64": "Tamil Nadu",
	"67": "Kerala",
	"68": "Kerala",
	"69": "Kerala",
	"70": "West Bengal",
	"71": "West Bengal",
	"72": "West Bengal",
	"73": "West Bengal",
	"74": "West Bengal",
	"75": "Odisha",
	"76": "Odisha",
	"77": "Odisha",
	"78": "Assam",
	"79": "Arunachal Pradesh",
	"80": "Bihar",
	"81": "Jharkhand",
	"82": "Jharkhand",
	"83": "Jharkhand",
	"84": "Bihar",
	"85": "Bihar",
}

// ResolveState returns the state for an Indian PIN code, or "" when the
// postal zone is unknown.
func ResolveState(pinCode string) string {
	if len(pinCode) < 2 {
		return ""
	}
	return statesByPostalPrefix[pinCode[:2]]
}
